// Package hash provides the CRC32-Castagnoli checksum guarding index files.
//
// Every encoded sequence and suffix array file stores the CRC32C of its body
// in the fixed header. Load recomputes it before any section is trusted.
//
//	sum := hash.CRC32C(body)
//
//	h := hash.NewCRC32C() // streaming, while the builder writes sections
//	h.Write(section)
//	sum = h.Sum32()
package hash
