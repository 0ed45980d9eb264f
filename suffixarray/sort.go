package suffixarray

import "github.com/hupe1980/seqdex/alphabet"

// sortSuffixes returns the start positions of all suffixes of text,
// including the empty one at len(text), in ascending order.
//
// Regular codes order by value, specials after them by position, and the
// end of the text after everything. Each special gets a distinct rank, so
// prefix doubling with counting sorts yields that order in O(n log n).
func sortSuffixes(text []byte) []uint64 {
	n := len(text) + 1
	rank := make([]int, n)
	specials := 0
	for i, c := range text {
		if alphabet.IsSpecial(c) {
			rank[i] = 256 + specials
			specials++
		} else {
			rank[i] = int(c)
		}
	}
	rank[n-1] = 256 + specials
	classes := 257 + specials

	sa := make([]int, n)
	tmp := make([]int, n)
	for i := range tmp {
		tmp[i] = i
	}
	countingSort(tmp, sa, rank, classes)

	for k := 1; ; k <<= 1 {
		// Order by the rank k symbols ahead. Suffixes ending within k
		// symbols already have a unique rank and go first.
		p := 0
		for i := max(n-k, 0); i < n; i++ {
			tmp[p] = i
			p++
		}
		for _, s := range sa {
			if s >= k {
				tmp[p] = s - k
				p++
			}
		}
		countingSort(tmp, sa, rank, classes)

		tmp[sa[0]] = 0
		for j := 1; j < n; j++ {
			a, b := sa[j-1], sa[j]
			r := tmp[a]
			if rank[a] != rank[b] || rankAt(rank, a+k) != rankAt(rank, b+k) {
				r++
			}
			tmp[b] = r
		}
		rank, tmp = tmp, rank
		classes = rank[sa[n-1]] + 1
		if classes == n {
			break
		}
	}

	out := make([]uint64, n)
	for i, s := range sa {
		out[i] = uint64(s)
	}
	return out
}

func rankAt(rank []int, i int) int {
	if i >= len(rank) {
		return -1
	}
	return rank[i]
}

// countingSort stably orders src by key into dst.
func countingSort(src, dst, key []int, classes int) {
	count := make([]int, classes+1)
	for _, i := range src {
		count[key[i]+1]++
	}
	for c := 1; c <= classes; c++ {
		count[c] += count[c-1]
	}
	for _, i := range src {
		dst[count[key[i]]] = i
		count[key[i]]++
	}
}
