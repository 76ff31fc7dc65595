package learn

import (
	"slices"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/vocab"
)

// ModalityTally counts answers for one modality.
type ModalityTally struct {
	Answered int
	Correct  int
}

// Tally accumulates results for the current session.
type Tally struct {
	Answered   int
	Correct    int
	ByModality map[quiz.Modality]*ModalityTally
	Missed     []*vocab.Word
}

func newTally() Tally {
	return Tally{ByModality: make(map[quiz.Modality]*ModalityTally)}
}

func (t *Tally) record(m quiz.Modality, w *vocab.Word, correct bool) {
	if t.ByModality == nil {
		t.ByModality = make(map[quiz.Modality]*ModalityTally)
	}
	t.Answered++
	mt := t.ByModality[m]
	if mt == nil {
		mt = &ModalityTally{}
		t.ByModality[m] = mt
	}
	mt.Answered++
	if correct {
		t.Correct++
		mt.Correct++
		return
	}
	if !slices.ContainsFunc(t.Missed, func(x *vocab.Word) bool { return x.ID == w.ID }) {
		t.Missed = append(t.Missed, w)
	}
}

// Accuracy returns correct over answered, or 0 before the first answer.
func (t Tally) Accuracy() float64 {
	if t.Answered == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answered)
}

// Summary is the end-of-session report.
type Summary struct {
	SessionID  string
	Filter     Filter
	Preference QuizPreference
	PoolSize   int
	Tally
}

// Summary snapshots the session results so far.
func (c *Controller) Summary() Summary {
	return Summary{
		SessionID:  c.sessionID,
		Filter:     c.filter,
		Preference: c.pref,
		PoolSize:   len(c.pool),
		Tally:      c.tally,
	}
}

// Modalities returns the modalities used, in menu order.
func (s Summary) Modalities() []quiz.Modality {
	var out []quiz.Modality
	for _, m := range quiz.Modalities {
		if s.ByModality[m] != nil {
			out = append(out, m)
		}
	}
	return out
}
