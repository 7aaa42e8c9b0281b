package grading

import "strings"

// DiffKind classifies a diff token relative to the reference text.
type DiffKind string

const (
	DiffMatch  DiffKind = "match"
	DiffAdd    DiffKind = "add"    // present in the reference, missing from the submission
	DiffRemove DiffKind = "remove" // present in the submission, missing from the reference
)

// DiffToken is one word of a submitted-vs-reference comparison.
type DiffToken struct {
	Text string
	Kind DiffKind
}

// DiffSummary counts diff tokens per kind.
type DiffSummary struct {
	Match  int
	Add    int
	Remove int
}

// tokenize splits text into whitespace-delimited words.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// BuildDiffTokens compares a submitted free-text answer against a reference
// answer word by word. It computes a longest-common-subsequence table over
// the two token lists and backtracks from the start, emitting match tokens
// for common words, remove tokens for submitted words absent from the
// reference, and add tokens for reference words absent from the submission.
func BuildDiffTokens(submittedText, referenceText string) []DiffToken {
	submitted := tokenize(submittedText)
	reference := tokenize(referenceText)

	rows := len(submitted)
	cols := len(reference)

	// dp[i][j] is the LCS length of submitted[i:] and reference[j:].
	dp := make([][]int, rows+1)
	for i := range dp {
		dp[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if submitted[i] == reference[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	tokens := make([]DiffToken, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case submitted[i] == reference[j]:
			tokens = append(tokens, DiffToken{Text: submitted[i], Kind: DiffMatch})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			tokens = append(tokens, DiffToken{Text: submitted[i], Kind: DiffRemove})
			i++
		default:
			tokens = append(tokens, DiffToken{Text: reference[j], Kind: DiffAdd})
			j++
		}
	}
	for ; i < rows; i++ {
		tokens = append(tokens, DiffToken{Text: submitted[i], Kind: DiffRemove})
	}
	for ; j < cols; j++ {
		tokens = append(tokens, DiffToken{Text: reference[j], Kind: DiffAdd})
	}

	return tokens
}

// SummarizeDiff reduces a token list to per-kind counts.
func SummarizeDiff(tokens []DiffToken) DiffSummary {
	var s DiffSummary
	for _, t := range tokens {
		switch t.Kind {
		case DiffMatch:
			s.Match++
		case DiffAdd:
			s.Add++
		case DiffRemove:
			s.Remove++
		}
	}
	return s
}
