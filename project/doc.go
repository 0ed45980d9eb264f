// Package project reads and writes the key=value project file that
// describes an index: its length, sequence counts and the integer layout
// of the machine that built it.
package project
