package encseq

import "github.com/hupe1980/seqdex/bitpack"

// BitInserter writes the extra bits of one block during Build. It is called
// once per block in increasing order with the block's symbol range
// [start, start+length).
//
// It may write cwBitsPerPos*length bits to cw at cwOff and up to
// maxVarBitsPerPos*length bits to vw at vwOff, and returns how many bits it
// wrote to vw. A non-nil error aborts the build.
type BitInserter interface {
	InsertBits(cw bitpack.String, cwOff bitpack.Offset, vw bitpack.String, vwOff bitpack.Offset, start, length uint64) (uint64, error)
}

// BitInserterFunc adapts a function to BitInserter.
type BitInserterFunc func(cw bitpack.String, cwOff bitpack.Offset, vw bitpack.String, vwOff bitpack.Offset, start, length uint64) (uint64, error)

func (f BitInserterFunc) InsertBits(cw bitpack.String, cwOff bitpack.Offset, vw bitpack.String, vwOff bitpack.Offset, start, length uint64) (uint64, error) {
	return f(cw, cwOff, vw, vwOff, start, length)
}
