package assessment

import "testing"

func sampleAssessment(title string, ids ...string) *Assessment {
	a := &Assessment{Meta: Meta{Title: title}}
	for _, id := range ids {
		a.Questions = append(a.Questions, Question{ID: id, Kind: KindNumeric})
	}
	return a
}

func TestNewFingerprint(t *testing.T) {
	fp := NewFingerprint(sampleAssessment("Quiz", "q1", "q2", "q3", "q4", "q5"))
	if fp.Title != "Quiz" || fp.QuestionCount != 5 {
		t.Errorf("fingerprint = %+v", fp)
	}
	if len(fp.SampleQuestionIDs) != 3 {
		t.Fatalf("sample ids = %v, want first 3", fp.SampleQuestionIDs)
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if fp.SampleQuestionIDs[i] != want {
			t.Errorf("sample[%d] = %q, want %q", i, fp.SampleQuestionIDs[i], want)
		}
	}

	short := NewFingerprint(sampleAssessment("Quiz", "only"))
	if len(short.SampleQuestionIDs) != 1 {
		t.Errorf("short sample ids = %v", short.SampleQuestionIDs)
	}
}

func TestFingerprintKey(t *testing.T) {
	fp := NewFingerprint(sampleAssessment("Quiz", "q1", "q2"))
	if got, want := fp.Key(), "Quiz::2::q1|q2"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}

	empty := NewFingerprint(sampleAssessment("Empty"))
	if got, want := empty.Key(), "Empty::0::none"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestFingerprintMatches(t *testing.T) {
	base := NewFingerprint(sampleAssessment("Quiz", "q1", "q2", "q3"))

	tests := []struct {
		name  string
		other Fingerprint
		want  bool
	}{
		{"identical", NewFingerprint(sampleAssessment("Quiz", "q1", "q2", "q3")), true},
		{"different title", NewFingerprint(sampleAssessment("Other", "q1", "q2", "q3")), false},
		{"different count", NewFingerprint(sampleAssessment("Quiz", "q1", "q2", "q3", "q4")), false},
		{"different sample ids", NewFingerprint(sampleAssessment("Quiz", "q9", "q2", "q3")), false},
		{"no samples on other side", Fingerprint{Title: "Quiz", QuestionCount: 3}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Matches(tc.other); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
			if got := tc.other.Matches(base); got != tc.want {
				t.Errorf("reverse Matches = %v, want %v", got, tc.want)
			}
		})
	}
}
