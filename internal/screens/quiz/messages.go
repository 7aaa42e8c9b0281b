package quiz

import (
	"time"

	"github.com/abhisek/soloquiz/internal/grading"
)

// timerTickMsg is sent every second to refresh the elapsed display and
// check the time limit.
type timerTickMsg time.Time

// submittedMsg is sent when grading and persistence of the attempt finish.
// SaveErr is non-nil when the attempt could not be stored; the summary is
// still shown.
type submittedMsg struct {
	Summary *grading.SubmissionSummary
	SaveErr error
}
