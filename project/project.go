package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/spf13/viper"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
)

// IntegerSize is the width of positions in every index file.
const IntegerSize = 64

// ErrMalformed is returned when a project file cannot be parsed.
var ErrMalformed = errors.New("project: malformed project file")

// Info is the content of a project file.
type Info struct {
	TotalLength         uint64 `mapstructure:"totallength"`
	SpecialCharacters   uint64 `mapstructure:"specialcharacters"`
	NumOfSequences      uint64 `mapstructure:"numofsequences"`
	NumOfDBSequences    uint64 `mapstructure:"numofdbsequences"`
	NumOfQuerySequences uint64 `mapstructure:"numofquerysequences"`
	Longest             uint64 `mapstructure:"longest"`
	PrefixLength        uint   `mapstructure:"prefixlength"`
	IntegerSize         uint   `mapstructure:"integersize"`
	LittleEndian        bool   `mapstructure:"littleendian"`
	ReadMode            uint   `mapstructure:"readmode"`
	BlockSize           uint   `mapstructure:"blocksize"`
	BucketBlocks        uint   `mapstructure:"bucketblocks"`
}

// IncompatibleProjectError reports an index built with a different integer
// layout.
type IncompatibleProjectError struct {
	Key   string
	Value string
	Want  string
}

func (e *IncompatibleProjectError) Error() string {
	return fmt.Sprintf("project: incompatible index: %s=%s, this build needs %s", e.Key, e.Value, e.Want)
}

// Validate checks that the index can be read on this machine.
func (i Info) Validate() error {
	if i.IntegerSize != IntegerSize {
		return &IncompatibleProjectError{Key: "integersize", Value: fmt.Sprint(i.IntegerSize), Want: fmt.Sprint(IntegerSize)}
	}
	if !i.LittleEndian {
		return &IncompatibleProjectError{Key: "littleendian", Value: "0", Want: "1"}
	}
	if !alphabet.ReadMode(i.ReadMode).Valid() {
		return fmt.Errorf("%w: readmode=%d", ErrMalformed, i.ReadMode)
	}
	return nil
}

// Mode returns the read mode the suffix table was sorted in.
func (i Info) Mode() alphabet.ReadMode { return alphabet.ReadMode(i.ReadMode) }

// Marshal renders the project file.
func (i Info) Marshal() []byte {
	var buf bytes.Buffer
	line := func(key string, v any) { fmt.Fprintf(&buf, "%s=%v\n", key, v) }
	line("totallength", i.TotalLength)
	line("specialcharacters", i.SpecialCharacters)
	line("numofsequences", i.NumOfSequences)
	line("numofdbsequences", i.NumOfDBSequences)
	line("numofquerysequences", i.NumOfQuerySequences)
	line("longest", i.Longest)
	line("prefixlength", i.PrefixLength)
	line("integersize", i.IntegerSize)
	line("littleendian", boolDigit(i.LittleEndian))
	line("readmode", i.ReadMode)
	line("blocksize", i.BlockSize)
	line("bucketblocks", i.BucketBlocks)
	return buf.Bytes()
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Unmarshal parses a project file. Unknown keys are ignored.
func Unmarshal(data []byte) (Info, error) {
	v := viper.New()
	v.SetConfigType("env")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for _, key := range []string{"totallength", "integersize", "littleendian", "readmode"} {
		if !v.IsSet(key) {
			return Info{}, fmt.Errorf("%w: missing %s", ErrMalformed, key)
		}
	}

	var info Info
	if err := v.Unmarshal(&info); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return info, nil
}

// Write stores info as name.
func Write(ctx context.Context, store blobstore.Store, name string, info Info) error {
	return store.Put(ctx, name, info.Marshal())
}

// Read loads and parses the project file name. It does not validate it.
func Read(ctx context.Context, store blobstore.Store, name string) (Info, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return Info{}, fmt.Errorf("project: read %q: %w", name, err)
	}
	return Unmarshal(data)
}

// RecommendedPrefixLength returns the largest k with numChars^k not above
// a quarter of totalLength, and at least 1.
func RecommendedPrefixLength(numChars int, totalLength uint64) uint {
	if numChars < 2 {
		return 1
	}
	limit := totalLength / 4
	k, p := uint(0), uint64(1)
	for {
		hi, next := bits.Mul64(p, uint64(numChars))
		if hi != 0 || next > limit {
			break
		}
		p = next
		k++
	}
	return max(k, 1)
}
