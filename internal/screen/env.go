package screen

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/store"
)

// Env carries the dependencies screens are built from.
type Env struct {
	Words  store.WordRepo
	Events store.EventRepo
	Logger logrus.FieldLogger
	Rand   *rand.Rand
	Now    func() time.Time

	// Session defaults preselected by the setup screen.
	Filter learn.Filter
	Quiz   learn.QuizPreference
}

// Clock returns e.Now, or time.Now when unset.
func (e Env) Clock() func() time.Time {
	if e.Now != nil {
		return e.Now
	}
	return time.Now
}

// Log returns e.Logger, or a discarding logger when unset.
func (e Env) Log() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
