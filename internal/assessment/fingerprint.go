package assessment

import (
	"strconv"
	"strings"
)

// sampleQuestionCount is how many leading question ids go into a fingerprint.
const sampleQuestionCount = 3

// Fingerprint identifies an assessment document across attempts without
// storing the full document. Two imports of the same file produce equal
// fingerprints; edits that change the title, question count, or the leading
// question ids produce different ones.
type Fingerprint struct {
	Title             string   `json:"title"`
	QuestionCount     int      `json:"questionCount"`
	SampleQuestionIDs []string `json:"sampleQuestionIds"`
}

// NewFingerprint derives the fingerprint of an assessment.
func NewFingerprint(a *Assessment) Fingerprint {
	n := min(sampleQuestionCount, len(a.Questions))
	ids := make([]string, 0, n)
	for _, q := range a.Questions[:n] {
		ids = append(ids, q.ID)
	}
	return Fingerprint{
		Title:             a.Meta.Title,
		QuestionCount:     len(a.Questions),
		SampleQuestionIDs: ids,
	}
}

// Key renders the fingerprint as a stable storage key.
func (f Fingerprint) Key() string {
	sample := strings.Join(f.SampleQuestionIDs, "|")
	if sample == "" {
		sample = "none"
	}
	return f.Title + "::" + strconv.Itoa(f.QuestionCount) + "::" + sample
}

// Matches compares two fingerprints. Sample ids are only compared when both
// sides carry them, so fingerprints recorded by older store versions (title
// and count only) still match.
func (f Fingerprint) Matches(other Fingerprint) bool {
	if f.Title != other.Title || f.QuestionCount != other.QuestionCount {
		return false
	}
	if len(f.SampleQuestionIDs) == 0 || len(other.SampleQuestionIDs) == 0 {
		return true
	}
	if len(f.SampleQuestionIDs) != len(other.SampleQuestionIDs) {
		return false
	}
	for i, id := range f.SampleQuestionIDs {
		if id != other.SampleQuestionIDs[i] {
			return false
		}
	}
	return true
}
