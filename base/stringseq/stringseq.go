// Package stringseq provides functions for converting sequences to strings.
package stringseq

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// AppendStringer appends the stringified elements of its second argument to the given string
// builder. The separator string sep is placed between elements in the resulting string.
func AppendStringer[T fmt.Stringer](b *strings.Builder, seq iter.Seq[T], sep string) {
	n := 0
	for item := range seq {
		if n > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item.String())
		n++
	}
}

// JoinStringer concatenates the stringified elements of its first argument to create a single
// string. The separator string sep is placed between elements in the resulting string.
func JoinStringer[T fmt.Stringer](seq iter.Seq[T], sep string) string {
	var b strings.Builder
	AppendStringer(&b, seq, sep)
	return b.String()
}

// Bracket returns the elements of a slice joined by sep and enclosed by open and close.
func Bracket[T fmt.Stringer](open string, xs []T, sep, close string) string {
	var b strings.Builder
	b.WriteString(open)
	AppendStringer(&b, slices.Values(xs), sep)
	b.WriteString(close)
	return b.String()
}
