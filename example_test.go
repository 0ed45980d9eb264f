package seqdex_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/seqdex"
	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/mmsearch"
)

// Example_queryMatches indexes two sequences and lists the maximal matches
// of a query.
func Example_queryMatches() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	ix, err := seqdex.Create(ctx, store, "genome", alphabet.DNA(), [][]byte{
		[]byte("TTACGTAA"),
		[]byte("CCACGTCC"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer ix.Close()

	err = ix.EnumQueryMatches(ctx, [][]byte{[]byte("GACGTC")}, 4,
		seqdex.SinkFunc(func(_ mmsearch.Accessor, m *seqdex.Match) error {
			fmt.Printf("db=%d query=%d len=%d\n", m.DBStart, m.QueryOffset, m.Length)
			return nil
		}))
	if err != nil {
		log.Fatal(err)
	}
	// Unordered output:
	// db=2 query=1 len=4
	// db=11 query=1 len=5
}

// Example_substringMatch matches a query against a database without
// writing an index.
func Example_substringMatch() {
	err := seqdex.SubstringMatch(context.Background(), []byte("TTACGTAA"), []byte("GACGTC"), 3, alphabet.DNA(),
		seqdex.SinkFunc(func(_ mmsearch.Accessor, m *seqdex.Match) error {
			fmt.Printf("db=%d query=%d len=%d\n", m.DBStart, m.QueryOffset, m.Length)
			return nil
		}))
	if err != nil {
		log.Fatal(err)
	}
	// Output: db=2 query=1 len=4
}
