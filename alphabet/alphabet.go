package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Wildcard is the original code of any ambiguous character.
	Wildcard byte = 254
	// Separator is the original code placed between two sequences.
	Separator byte = 255

	// MaxChars is the largest number of regular symbols an alphabet may have.
	MaxChars = 252

	// SeparatorChar is the printable form of a separator.
	SeparatorChar byte = '|'

	unmapped byte = 253
)

var (
	// ErrUnknownChar is returned when text holds a character outside the alphabet.
	ErrUnknownChar = errors.New("alphabet: unknown character")
	// ErrNoComplement is returned for read modes that need a complement the
	// alphabet does not define.
	ErrNoComplement = errors.New("alphabet: alphabet has no complement")
)

// Symbol is a code of the transformed alphabet: regular symbols first, then
// wildcard, then separator.
type Symbol = uint8

// Alphabet maps characters to symbol codes.
type Alphabet struct {
	name         string
	chars        []byte // printable char per regular code
	wildcardChar byte
	encode       [256]byte
	complement   []byte // nil when undefined
}

// New creates an alphabet. Each entry of symbols lists the characters mapped
// to one regular code; its first character is the printable form. Characters
// in wildcards map to Wildcard and wildcards[0] is their printable form.
// complement, if non-nil, gives the complementary regular code per code.
func New(name string, symbols []string, wildcards string, complement []byte) (*Alphabet, error) {
	if len(symbols) == 0 || len(symbols) > MaxChars {
		return nil, fmt.Errorf("alphabet: %d symbols, want 1..%d", len(symbols), MaxChars)
	}
	if wildcards == "" {
		return nil, errors.New("alphabet: no wildcard character")
	}
	if complement != nil && len(complement) != len(symbols) {
		return nil, fmt.Errorf("alphabet: complement table has %d entries, want %d", len(complement), len(symbols))
	}

	a := &Alphabet{
		name:         name,
		chars:        make([]byte, len(symbols)),
		wildcardChar: wildcards[0],
	}
	for i := range a.encode {
		a.encode[i] = unmapped
	}
	for code, s := range symbols {
		if s == "" {
			return nil, fmt.Errorf("alphabet: symbol %d has no characters", code)
		}
		a.chars[code] = s[0]
		for i := 0; i < len(s); i++ {
			if err := a.bind(s[i], byte(code)); err != nil {
				return nil, err
			}
		}
	}
	for i := 0; i < len(wildcards); i++ {
		if err := a.bind(wildcards[i], Wildcard); err != nil {
			return nil, err
		}
	}
	if complement != nil {
		for code, c := range complement {
			if int(c) >= len(symbols) {
				return nil, fmt.Errorf("alphabet: complement of %d is %d, out of range", code, c)
			}
		}
		a.complement = append([]byte(nil), complement...)
	}
	return a, nil
}

func (a *Alphabet) bind(c, code byte) error {
	if c == SeparatorChar {
		return fmt.Errorf("alphabet: %q is reserved for separators", c)
	}
	if a.encode[c] != unmapped && a.encode[c] != code {
		return fmt.Errorf("alphabet: character %q mapped twice", c)
	}
	a.encode[c] = code
	return nil
}

var dna = mustNew(New("dna",
	[]string{"Aa", "Cc", "Gg", "TtUu"},
	"NnRrYySsWwKkMmBbDdHhVv",
	[]byte{3, 2, 1, 0},
))

var protein = mustNew(New("protein",
	[]string{
		"Aa", "Cc", "Dd", "Ee", "Ff", "Gg", "Hh", "Ii", "Kk", "Ll",
		"Mm", "Nn", "Pp", "Qq", "Rr", "Ss", "Tt", "Vv", "Ww", "Yy",
	},
	"XxBbZzJjUuOo*",
	nil,
))

func mustNew(a *Alphabet, err error) *Alphabet {
	if err != nil {
		panic(err)
	}
	return a
}

// DNA returns the nucleotide alphabet ACGT. U reads as T and IUPAC ambiguity
// codes read as wildcards.
func DNA() *Alphabet { return dna }

// Protein returns the 20 letter amino acid alphabet.
func Protein() *Alphabet { return protein }

// Name returns the alphabet name.
func (a *Alphabet) Name() string { return a.name }

// NumChars returns the number of regular symbols.
func (a *Alphabet) NumChars() int { return len(a.chars) }

// Size returns the number of transformed symbols, specials included.
func (a *Alphabet) Size() int { return len(a.chars) + 2 }

// HasComplement reports whether complementing read modes are available.
func (a *Alphabet) HasComplement() bool { return a.complement != nil }

// Encode returns the original code of c.
func (a *Alphabet) Encode(c byte) (byte, bool) {
	code := a.encode[c]
	if c == SeparatorChar {
		return Separator, true
	}
	return code, code != unmapped
}

// EncodeText encodes every character of text.
func (a *Alphabet) EncodeText(text []byte) ([]byte, error) {
	out := make([]byte, len(text))
	for i, c := range text {
		code, ok := a.Encode(c)
		if !ok {
			return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownChar, c, i)
		}
		out[i] = code
	}
	return out, nil
}

// Decode returns the printable character of an original code.
func (a *Alphabet) Decode(code byte) byte {
	switch {
	case code == Wildcard:
		return a.wildcardChar
	case code == Separator:
		return SeparatorChar
	case int(code) < len(a.chars):
		return a.chars[code]
	default:
		panic(fmt.Sprintf("alphabet: code %d outside %s alphabet", code, a.name))
	}
}

// DecodeText decodes a code sequence into printable text.
func (a *Alphabet) DecodeText(codes []byte) string {
	var sb strings.Builder
	sb.Grow(len(codes))
	for _, c := range codes {
		sb.WriteByte(a.Decode(c))
	}
	return sb.String()
}

// IsSpecial reports whether an original code is a wildcard or separator.
func IsSpecial(code byte) bool {
	return code >= Wildcard
}

// Transform maps an original code to its transformed symbol.
func (a *Alphabet) Transform(code byte) Symbol {
	switch code {
	case Wildcard:
		return Symbol(len(a.chars))
	case Separator:
		return Symbol(len(a.chars) + 1)
	}
	if int(code) >= len(a.chars) {
		panic(fmt.Sprintf("alphabet: code %d outside %s alphabet", code, a.name))
	}
	return code
}

// Untransform maps a transformed symbol back to its original code.
func (a *Alphabet) Untransform(sym Symbol) byte {
	n := len(a.chars)
	switch {
	case int(sym) < n:
		return sym
	case int(sym) == n:
		return Wildcard
	case int(sym) == n+1:
		return Separator
	default:
		panic(fmt.Sprintf("alphabet: symbol %d outside %s alphabet", sym, a.name))
	}
}

// Complement returns the complement of an original code. Specials are their
// own complement.
func (a *Alphabet) Complement(code byte) byte {
	if IsSpecial(code) {
		return code
	}
	if a.complement == nil {
		panic(ErrNoComplement)
	}
	return a.complement[code]
}

// Apply complements code when mode requires it.
func (a *Alphabet) Apply(mode ReadMode, code byte) byte {
	if mode.IsComplement() {
		return a.Complement(code)
	}
	return code
}

// Check returns an error when mode needs a complement the alphabet lacks.
func (a *Alphabet) Check(mode ReadMode) error {
	if !mode.Valid() {
		return fmt.Errorf("alphabet: invalid read mode %d", mode)
	}
	if mode.IsComplement() && a.complement == nil {
		return fmt.Errorf("%w: %s with %s", ErrNoComplement, a.name, mode)
	}
	return nil
}

// Equal reports whether two alphabets encode identically.
func (a *Alphabet) Equal(b *Alphabet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.name == b.name &&
		string(a.chars) == string(b.chars) &&
		a.wildcardChar == b.wildcardChar &&
		a.encode == b.encode &&
		string(a.complement) == string(b.complement) &&
		(a.complement == nil) == (b.complement == nil)
}

// EncodeSequences encodes each text and joins the results with separators.
func EncodeSequences(a *Alphabet, seqs ...[]byte) ([]byte, error) {
	n := 0
	for _, s := range seqs {
		n += len(s) + 1
	}
	out := make([]byte, 0, max(n-1, 0))
	for i, s := range seqs {
		if i > 0 {
			out = append(out, Separator)
		}
		enc, err := a.EncodeText(s)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}
