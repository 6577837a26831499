package practice

import (
	"time"

	"github.com/abhisek/italiano/internal/explain"
)

// tickMsg re-renders so notifications expire and background results show.
type tickMsg time.Time

// refreshedMsg is sent when a refresh (statistics reload) finished.
type refreshedMsg struct {
	Err error
}

// resetDoneMsg is sent when a confirmed reset finished.
type resetDoneMsg struct {
	Err error
}

// explainedMsg carries the explanation of the focused mistake.
type explainedMsg struct {
	ID          string
	Field       string
	Explanation *explain.Explanation
	Err         error
}
