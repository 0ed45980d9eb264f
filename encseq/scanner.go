package encseq

import "github.com/hupe1980/seqdex/alphabet"

// Scanner reads original codes through a read mode with a private hint.
type Scanner struct {
	s    *Sequence
	mode alphabet.ReadMode
	hint Hint
}

// NewScanner returns a Scanner reading s through mode.
func (s *Sequence) NewScanner(mode alphabet.ReadMode) *Scanner {
	return &Scanner{s: s, mode: mode, hint: s.NewHint()}
}

// CharAt returns the code at pos as seen through the scanner's read mode.
func (sc *Scanner) CharAt(pos uint64) byte {
	return sc.s.EncodedCharAt(pos, sc.mode, sc.hint)
}

// Release frees the scanner's hint.
func (sc *Scanner) Release() { sc.hint.Release() }
