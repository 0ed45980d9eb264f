package mmsearch

import (
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/encseq"
)

// Scanner reads original codes through the read mode it was created with.
type Scanner interface {
	CharAt(pos uint64) byte
	Release()
}

// Accessor is a database or query text.
type Accessor interface {
	TotalLength() uint64
	NewScanner(mode alphabet.ReadMode) Scanner
}

// SuffixTable is a sorted suffix table of an Accessor read in ReadMode.
type SuffixTable interface {
	Len() uint64
	At(i uint64) uint64
	ReadMode() alphabet.ReadMode
}

type encoded struct {
	seq *encseq.Sequence
}

// Encoded adapts an encoded sequence. Every scanner owns a private hint.
func Encoded(seq *encseq.Sequence) Accessor {
	return encoded{seq: seq}
}

func (e encoded) TotalLength() uint64 { return e.seq.Length() }

func (e encoded) NewScanner(mode alphabet.ReadMode) Scanner {
	return e.seq.NewScanner(mode)
}

// Plain is an Accessor over original codes held in memory. Alphabet is only
// needed for complementing read modes.
type Plain struct {
	Codes    []byte
	Alphabet *alphabet.Alphabet
}

// TotalLength returns the number of codes.
func (p Plain) TotalLength() uint64 { return uint64(len(p.Codes)) }

// NewScanner reads the codes in mode. It panics for a complementing mode
// without an alphabet complement.
func (p Plain) NewScanner(mode alphabet.ReadMode) Scanner {
	if mode.IsComplement() && (p.Alphabet == nil || !p.Alphabet.HasComplement()) {
		panic(fmt.Sprintf("mmsearch: read mode %s needs an alphabet with complement", mode))
	}
	return plainScanner{p: p, mode: mode}
}

type plainScanner struct {
	p    Plain
	mode alphabet.ReadMode
}

func (s plainScanner) CharAt(pos uint64) byte {
	c := s.p.Codes[s.mode.Position(pos, uint64(len(s.p.Codes)))]
	if s.mode.IsComplement() {
		return s.p.Alphabet.Complement(c)
	}
	return c
}

func (plainScanner) Release() {}
