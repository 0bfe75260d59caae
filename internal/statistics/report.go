package statistics

import (
	"time"

	"github.com/lox/bjtrainer/internal/strategy"
)

// Report is the JSON form of Statistics written by --stats-file.
type Report struct {
	Session   string    `json:"session"`
	Generated time.Time `json:"generated"`

	Rounds        int     `json:"rounds"`
	Hands         int     `json:"hands"`
	Decisions     int     `json:"decisions"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	AccuracyLow   float64 `json:"accuracy_low"`
	AccuracyHigh  float64 `json:"accuracy_high"`
	Mistakes      int     `json:"mistakes"`
	ReplaysServed int     `json:"replays_served"`
	ReplaysPassed int     `json:"replays_passed"`
	Doubles       int     `json:"doubles"`
	Splits        int     `json:"splits"`
	ElapsedMs     int64   `json:"elapsed_ms"`

	Charts      map[string]ChartReport `json:"charts"`
	Settlements map[string]int         `json:"settlements"`
}

type ChartReport struct {
	Decisions int     `json:"decisions"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// Report converts s for export. session identifies the run and now stamps it.
func (s Statistics) Report(session string, now time.Time) Report {
	lo, hi := s.ConfidenceInterval95()
	r := Report{
		Session:       session,
		Generated:     now.UTC(),
		Rounds:        s.Rounds,
		Hands:         s.Hands,
		Decisions:     s.Decisions,
		Correct:       s.Correct,
		Accuracy:      s.Accuracy(),
		AccuracyLow:   lo,
		AccuracyHigh:  hi,
		Mistakes:      s.Mistakes,
		ReplaysServed: s.ReplaysServed,
		ReplaysPassed: s.ReplaysPassed,
		Doubles:       s.Doubles,
		Splits:        s.Splits,
		ElapsedMs:     s.Elapsed.Milliseconds(),
		Charts:        make(map[string]ChartReport, len(s.Charts)),
		Settlements:   make(map[string]int, len(Settlements)),
	}
	for c := strategy.HardChart; c <= strategy.SurrenderChart; c++ {
		cs := s.Chart(c)
		r.Charts[c.String()] = ChartReport{Decisions: cs.Decisions, Correct: cs.Correct, Accuracy: cs.Accuracy()}
	}
	for _, st := range Settlements {
		r.Settlements[st.String()] = s.Settled(st)
	}
	return r
}
