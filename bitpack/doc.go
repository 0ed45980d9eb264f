// Package bitpack stores and retrieves integers of arbitrary bit width
// (1 to 64 bits) in a flat, bit-addressable byte string.
//
// # Layout
//
// A String is addressed by bit offset. Bit 0 is the most significant bit of
// byte 0, so fields are laid out in reading order and two fields of equal
// width compare the same way their packed bytes would.
//
//	bs := bitpack.New(3 * 17)
//	bitpack.StoreUint64(bs, 0, 17, 99999)
//	v := bitpack.GetUint64(bs, 0, 17) // 99999
//
// # Batches
//
// The uniform array helpers move N fields of the same width in one pass. They
// produce exactly the bytes that N single calls at consecutive offsets would.
//
// # Errors
//
// A width of 0 or more than 64 is a programming error and panics. Offsets past
// the end of the string panic through the usual slice bounds checks.
package bitpack
