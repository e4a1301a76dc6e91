// Package tokenizer normalizes raw document text into lowercase word tokens.
package tokenizer

import "strings"

// delimiters are the characters that terminate a token. Runs of consecutive
// delimiters produce no empty tokens.
const delimiters = "'.()`,\" \n"

// Tokenize lowercases text and splits it on the delimiter set, discarding
// empty fragments. Token order follows input order, left to right. The
// function keeps no state and is safe to call concurrently.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isDelimiter)
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(delimiters, r)
}
