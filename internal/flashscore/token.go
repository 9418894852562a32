// Package flashscore extracts match results from a live results page and
// normalizes them into typed rows. The page renders each match as one
// text block; the pipeline splits the block into tokens, classifies the
// record shape, resolves the omitted year, and accumulates the output
// table in page order.
package flashscore

import "strings"

// overtimeMarker is a label line some entries carry ("after overtime").
// It contributes no data and is dropped before shape classification.
const overtimeMarker = "AOT"

// Tokenize splits one rendered match entry into its fields. No
// validation happens here; downstream stages judge validity by token
// count.
func Tokenize(block string) []string {
	tokens := strings.Split(block, "\n")
	for i, tok := range tokens {
		if tok == overtimeMarker {
			return append(tokens[:i], tokens[i+1:]...)
		}
	}
	return tokens
}
