package alphabet

import (
	"errors"
	"fmt"
)

const (
	binaryMagic   = 'A'
	binaryVersion = 1

	flagComplement = 1 << 0
)

// ErrInvalidEncoding is returned when a serialized alphabet is malformed.
var ErrInvalidEncoding = errors.New("alphabet: invalid encoding")

// MarshalBinary encodes the alphabet as:
//
//	magic(1) version(1) flags(1) numChars(1) wildcardChar(1) nameLen(1)
//	name chars encode[256] complement[numChars]?
func (a *Alphabet) MarshalBinary() ([]byte, error) {
	if len(a.name) > 255 {
		return nil, fmt.Errorf("alphabet: name too long (%d bytes)", len(a.name))
	}
	var flags byte
	if a.complement != nil {
		flags |= flagComplement
	}
	buf := make([]byte, 0, 6+len(a.name)+len(a.chars)+256+len(a.complement))
	buf = append(buf, binaryMagic, binaryVersion, flags, byte(len(a.chars)), a.wildcardChar, byte(len(a.name)))
	buf = append(buf, a.name...)
	buf = append(buf, a.chars...)
	buf = append(buf, a.encode[:]...)
	buf = append(buf, a.complement...)
	return buf, nil
}

// UnmarshalBinary decodes an alphabet written by MarshalBinary.
func (a *Alphabet) UnmarshalBinary(data []byte) error {
	if len(data) < 6 || data[0] != binaryMagic {
		return ErrInvalidEncoding
	}
	if data[1] != binaryVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidEncoding, data[1])
	}
	flags := data[2]
	numChars := int(data[3])
	nameLen := int(data[5])
	want := 6 + nameLen + numChars + 256
	if flags&flagComplement != 0 {
		want += numChars
	}
	if numChars == 0 || numChars > MaxChars || len(data) != want {
		return fmt.Errorf("%w: %d bytes for %d symbols", ErrInvalidEncoding, len(data), numChars)
	}

	out := Alphabet{wildcardChar: data[4]}
	p := 6
	out.name = string(data[p : p+nameLen])
	p += nameLen
	out.chars = append([]byte(nil), data[p:p+numChars]...)
	p += numChars
	copy(out.encode[:], data[p:p+256])
	p += 256
	for _, code := range out.encode {
		if code != unmapped && !IsSpecial(code) && int(code) >= numChars {
			return fmt.Errorf("%w: code %d out of range", ErrInvalidEncoding, code)
		}
	}
	if flags&flagComplement != 0 {
		out.complement = append([]byte(nil), data[p:p+numChars]...)
		for _, c := range out.complement {
			if int(c) >= numChars {
				return fmt.Errorf("%w: complement %d out of range", ErrInvalidEncoding, c)
			}
		}
	}
	*a = out
	return nil
}
