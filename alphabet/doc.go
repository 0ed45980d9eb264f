// Package alphabet maps sequence characters to the small integer codes the
// index stores.
//
// Regular symbols get dense codes 0..NumChars()-1. Two special codes are
// shared by every alphabet: Wildcard for ambiguous characters and Separator
// for sequence boundaries. Specials never take part in a match.
//
// The transformed alphabet used inside the block encoding appends the two
// specials after the regular symbols, so a store over DNA works with the
// five symbols A C G T and wildcard, plus the separator.
package alphabet
