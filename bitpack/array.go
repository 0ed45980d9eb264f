package bitpack

// StoreUniformUint64Array writes len(vals) fields of width bits each,
// starting at offset. Only the low width bits of every value are stored.
func StoreUniformUint64Array(bs String, offset Offset, width uint, vals []uint64) {
	checkWidth(width)
	if len(vals) == 0 {
		return
	}
	w := newWriter(bs, offset)
	mask := lowMask(width)
	for _, v := range vals {
		w.put(v&mask, width)
	}
	w.finish()
}

// StoreUniformInt64Array is the signed counterpart of StoreUniformUint64Array.
func StoreUniformInt64Array(bs String, offset Offset, width uint, vals []int64) {
	checkWidth(width)
	if len(vals) == 0 {
		return
	}
	w := newWriter(bs, offset)
	mask := lowMask(width)
	for _, v := range vals {
		w.put(uint64(v)&mask, width)
	}
	w.finish()
}

// GetUniformUint64Array reads len(dst) consecutive width bit fields.
func GetUniformUint64Array(bs String, offset Offset, width uint, dst []uint64) {
	checkWidth(width)
	if len(dst) == 0 {
		return
	}
	r := newReader(bs, offset)
	for i := range dst {
		dst[i] = r.get(width)
	}
}

// GetUniformInt64Array reads len(dst) consecutive sign-extended fields.
func GetUniformInt64Array(bs String, offset Offset, width uint, dst []int64) {
	checkWidth(width)
	if len(dst) == 0 {
		return
	}
	r := newReader(bs, offset)
	for i := range dst {
		dst[i] = signExtend(r.get(width), width)
	}
}

// writer accumulates pending bits in the low end of acc and flushes whole
// bytes. At most 7 bits are pending between puts.
type writer struct {
	bs   String
	idx  uint64
	acc  uint64
	fill uint
}

func newWriter(bs String, offset Offset) *writer {
	w := &writer{bs: bs, idx: offset >> 3, fill: uint(offset & 7)}
	if w.fill > 0 {
		w.acc = uint64(bs[w.idx] >> (8 - w.fill))
	}
	return w
}

func (w *writer) put(v uint64, width uint) {
	if width > 32 {
		w.push(v>>32, width-32)
		w.push(v&0xffffffff, 32)
		return
	}
	w.push(v, width)
}

func (w *writer) push(v uint64, n uint) {
	w.acc = w.acc<<n | v
	w.fill += n
	for w.fill >= 8 {
		w.bs[w.idx] = byte(w.acc >> (w.fill - 8))
		w.idx++
		w.fill -= 8
	}
}

func (w *writer) finish() {
	if w.fill == 0 {
		return
	}
	keep := byte(lowMask(8 - w.fill))
	w.bs[w.idx] = byte(w.acc<<(8-w.fill)) | w.bs[w.idx]&keep
}

type reader struct {
	bs    String
	idx   uint64
	acc   uint64
	avail uint
}

func newReader(bs String, offset Offset) *reader {
	skip := uint(offset & 7)
	idx := offset >> 3
	return &reader{
		bs:    bs,
		idx:   idx + 1,
		acc:   uint64(bs[idx]) & lowMask(8-skip),
		avail: 8 - skip,
	}
}

func (r *reader) get(width uint) uint64 {
	if width > 32 {
		hi := r.pull(width - 32)
		return hi<<32 | r.pull(32)
	}
	return r.pull(width)
}

func (r *reader) pull(n uint) uint64 {
	for r.avail < n {
		r.acc = r.acc<<8 | uint64(r.bs[r.idx])
		r.idx++
		r.avail += 8
	}
	v := (r.acc >> (r.avail - n)) & lowMask(n)
	r.avail -= n
	return v
}
