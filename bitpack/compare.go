package bitpack

// compareChunk is the widest slice compared per step once both fields are
// aligned to the same width.
const compareChunk = 16

// Compare compares two unsigned fields as numbers and returns -1, 0 or 1.
// The fields may have different widths; the narrower one is zero-extended.
// Comparison stops at the first differing chunk, so long equal prefixes are
// never decoded twice.
func Compare(a String, offA Offset, widthA uint, b String, offB Offset, widthB uint) int {
	checkWidth(widthA)
	checkWidth(widthB)
	switch {
	case widthA > widthB:
		excess := widthA - widthB
		if GetUint64(a, offA, excess) != 0 {
			return 1
		}
		offA += uint64(excess)
		widthA = widthB
	case widthB > widthA:
		excess := widthB - widthA
		if GetUint64(b, offB, excess) != 0 {
			return -1
		}
		offB += uint64(excess)
	}
	for left := widthA; left > 0; {
		n := min(left, compareChunk)
		x := GetUint64(a, offA, n)
		y := GetUint64(b, offB, n)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
		offA += uint64(n)
		offB += uint64(n)
		left -= n
	}
	return 0
}

// CompareInt compares two two's complement fields, sign-extending the
// narrower one.
func CompareInt(a String, offA Offset, widthA uint, b String, offB Offset, widthB uint) int {
	x := GetInt64(a, offA, widthA)
	y := GetInt64(b, offB, widthB)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
