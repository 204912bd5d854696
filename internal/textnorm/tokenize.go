package textnorm

import "strings"

// Tokenize splits normalized text into word tokens on whitespace boundaries.
// It never filters tokens itself; stopword and length policies belong to the
// callers so that every stage sees the same token positions.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// NGrams builds contiguous n-grams from the unigram sequence of text with a
// sliding window of width n and stride 1, joining each window with single
// spaces. Text with fewer than n tokens yields no n-grams.
func NGrams(text string, n int) []string {
	tokens := Tokenize(text)
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}
