package learn

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

// ErrWrongPhase is returned when an action is not valid in the current phase.
var ErrWrongPhase = errors.New("action not valid in current phase")

// Phase is where the controller is in its question loop.
type Phase int

const (
	PhaseLoading  Phase = iota // Fetching the pool
	PhaseTesting               // A question is on screen
	PhaseFeedback              // Showing the verdict for the last answer
	PhaseFinished              // Pool exhausted or empty
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseTesting:
		return "testing"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Feedback describes the outcome of the last answer.
type Feedback struct {
	Correct    bool
	Given      string
	Expected   string
	Modality   quiz.Modality
	Word       *vocab.Word
	TierBefore vocab.Tier
	TierAfter  vocab.Tier

	// PersistErr is set when the updated word could not be written back.
	// The in-memory update stands regardless.
	PersistErr error
}

// LoadRequest is a pool fetch tagged with the generation that issued it.
type LoadRequest struct {
	Generation uint64
	Filter     Filter
	Preference QuizPreference
}

// LoadResult carries a fetched pool back to FinishLoad. Distractors is
// every stored word; multiple-choice options are drawn from it rather
// than from the filtered pool.
type LoadResult struct {
	Generation  uint64
	Pool        []*vocab.Word
	Distractors []*vocab.Word
	Err         error
}

// Options configures a Controller. Words is required; everything else
// has a usable default.
type Options struct {
	Words  store.WordRepo
	Events store.EventRepo
	Logger logrus.FieldLogger
	Rand   *rand.Rand
	Now    func() time.Time
}

// Controller runs one learning session: it picks words, renders
// questions, scores answers and writes progress back to the store.
//
// Controller is not safe for concurrent use. Fetch is the exception: it
// only reads the store and may run on another goroutine.
type Controller struct {
	words  store.WordRepo
	events store.EventRepo
	log    logrus.FieldLogger
	rng    *rand.Rand
	now    func() time.Time

	sessionID  string
	filter     Filter
	pref       QuizPreference
	phase      Phase
	generation uint64

	pool        []*vocab.Word
	distractors []*vocab.Word
	tested      map[string]bool
	current  *vocab.Word
	question *quiz.Question
	advisory string
	feedback *Feedback
	loadErr  error
	shownAt  time.Time

	tally Tally
}

// New creates a controller in PhaseLoading with no pool.
func New(opts Options) *Controller {
	c := &Controller{
		words:  opts.Words,
		events: opts.Events,
		log:    opts.Logger,
		rng:    opts.Rand,
		now:    opts.Now,
		phase:  PhaseLoading,
		tested: make(map[string]bool),
	}
	if c.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		c.log = l
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Load fetches the pool for filter and pref synchronously and presents
// the first word.
func (c *Controller) Load(ctx context.Context, filter Filter, pref QuizPreference) {
	req := c.BeginLoad(filter, pref)
	c.FinishLoad(ctx, c.Fetch(ctx, req))
}

// Restart begins a reload with the current filter and preference. The
// caller fetches and finishes it like any other LoadRequest.
func (c *Controller) Restart() LoadRequest {
	return c.BeginLoad(c.filter, c.pref)
}

// BeginLoad enters PhaseLoading and returns a request stamped with a new
// generation. Results from earlier requests are ignored by FinishLoad.
func (c *Controller) BeginLoad(filter Filter, pref QuizPreference) LoadRequest {
	c.generation++
	c.filter, c.pref = filter, pref
	c.phase = PhaseLoading
	c.current, c.question, c.feedback, c.advisory = nil, nil, nil, ""
	c.loadErr = nil
	return LoadRequest{Generation: c.generation, Filter: filter, Preference: pref}
}

// Fetch reads the pool for req and the full word list for distractors.
// A failed distractor read degrades to the pool.
func (c *Controller) Fetch(ctx context.Context, req LoadRequest) LoadResult {
	res := LoadResult{Generation: req.Generation}
	res.Pool, res.Err = FetchPool(ctx, c.words, req.Filter, c.now())
	if res.Err != nil || req.Filter == FilterAll {
		res.Distractors = res.Pool
		return res
	}

	all, err := c.words.All(ctx)
	if err != nil {
		c.log.WithError(err).Warn("load distractor words")
		all = res.Pool
	}
	res.Distractors = all
	return res
}

// FinishLoad installs res as the session pool and presents the first
// word. It reports false and changes nothing when res is stale.
func (c *Controller) FinishLoad(ctx context.Context, res LoadResult) bool {
	if res.Generation != c.generation {
		c.log.WithFields(logrus.Fields{
			"generation": res.Generation,
			"current":    c.generation,
		}).Debug("discarding stale load")
		return false
	}

	c.sessionID = uuid.NewString()
	c.tested = make(map[string]bool)
	c.tally = newTally()
	c.pool, c.distractors = res.Pool, res.Distractors
	if c.distractors == nil {
		c.distractors = c.pool
	}
	if res.Err != nil {
		c.log.WithError(res.Err).WithField("filter", string(c.filter)).Error("load word pool")
		c.loadErr = res.Err
		c.pool, c.distractors = nil, nil
	}

	c.logSession(ctx, "start")
	c.present()
	return true
}

// Answer grades answer against the current question, applies the score
// and persists the word, then enters PhaseFeedback.
func (c *Controller) Answer(ctx context.Context, answer string) (*Feedback, error) {
	if c.phase != PhaseTesting || c.question == nil {
		return nil, fmt.Errorf("answer in %s: %w", c.phase, ErrWrongPhase)
	}

	q, w := c.question, c.current
	v := q.Check(answer)
	before := w.Tier

	// The score is applied in memory before the write. If Put fails the
	// change is kept and surfaced in PersistErr; nothing is rolled back.
	Score(w, v.Correct, q.Category, c.now())
	persistErr := c.words.Put(ctx, w)
	if persistErr != nil {
		c.log.WithError(persistErr).WithField("word", w.Text).Error("persist word progress")
	}

	c.feedback = &Feedback{
		Correct:    v.Correct,
		Given:      v.Given,
		Expected:   v.Expected,
		Modality:   q.Modality,
		Word:       w,
		TierBefore: before,
		TierAfter:  w.Tier,
		PersistErr: persistErr,
	}
	c.tally.record(q.Modality, w, v.Correct)
	c.phase = PhaseFeedback

	c.logAnswer(ctx, q, v, before, w.Tier)
	return c.feedback, nil
}

// Advance marks the current word as tested and presents the next one.
func (c *Controller) Advance(ctx context.Context) error {
	if c.phase != PhaseFeedback {
		return fmt.Errorf("advance in %s: %w", c.phase, ErrWrongPhase)
	}
	c.tested[c.current.ID] = true
	c.feedback = nil
	c.present()
	if c.phase == PhaseFinished {
		c.logSession(ctx, "finish")
	}
	return nil
}

// End finishes the session early. It is a no-op while loading or once
// finished.
func (c *Controller) End(ctx context.Context) {
	if c.phase == PhaseLoading || c.phase == PhaseFinished {
		return
	}
	c.current, c.question, c.feedback, c.advisory = nil, nil, nil, ""
	c.phase = PhaseFinished
	c.logSession(ctx, "finish")
}

// present picks the next untested word and renders its question, or
// enters PhaseFinished when none remain.
func (c *Controller) present() {
	c.current, c.question, c.advisory = nil, nil, ""

	remaining := lo.Filter(c.pool, func(w *vocab.Word, _ int) bool { return !c.tested[w.ID] })
	w := NextWord(remaining, c.rng)
	if w == nil {
		c.phase = PhaseFinished
		return
	}

	m, advisory := ChooseModality(w, c.pref, c.rng)
	q, err := quiz.Build(m, w, c.distractors, c.rng)
	if err != nil {
		// Every word can be spelled, so this is the last resort when a
		// modality can't be built (a store too small for distractors).
		c.log.WithError(err).WithField("word", w.Text).Debug("falling back to spelling")
		q, _ = quiz.Build(quiz.Spelling, w, c.distractors, c.rng)
		advisory = AdvisoryFewDistractor
	}

	c.current, c.question, c.advisory = w, q, advisory
	c.shownAt = c.now()
	c.phase = PhaseTesting
}

func (c *Controller) logAnswer(ctx context.Context, q *quiz.Question, v quiz.Verdict, before, after vocab.Tier) {
	if c.events == nil {
		return
	}
	err := c.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:      c.sessionID,
		WordID:         q.WordID,
		Word:           c.current.Text,
		Modality:       string(q.Modality),
		Correct:        v.Correct,
		GivenAnswer:    v.Given,
		ExpectedAnswer: v.Expected,
		TierBefore:     before.String(),
		TierAfter:      after.String(),
		TimeMs:         int(c.now().Sub(c.shownAt).Milliseconds()),
	})
	if err != nil {
		c.log.WithError(err).Warn("record answer event")
	}
}

func (c *Controller) logSession(ctx context.Context, action string) {
	c.log.WithFields(logrus.Fields{
		"session":  c.sessionID,
		"action":   action,
		"filter":   string(c.filter),
		"quiz":     string(c.pref),
		"pool":     len(c.pool),
		"answered": c.tally.Answered,
	}).Info("learning session")

	if c.events == nil {
		return
	}
	err := c.events.AppendSession(ctx, store.SessionEventData{
		SessionID: c.sessionID,
		Action:    action,
		Filter:    string(c.filter),
		Quiz:      string(c.pref),
		PoolSize:  len(c.pool),
		Answered:  c.tally.Answered,
		Correct:   c.tally.Correct,
	})
	if err != nil {
		c.log.WithError(err).Warn("record session event")
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Generation returns the generation of the latest load request.
func (c *Controller) Generation() uint64 { return c.generation }

// Filter returns the active filter.
func (c *Controller) Filter() Filter { return c.filter }

// Preference returns the active quiz preference.
func (c *Controller) Preference() QuizPreference { return c.pref }

// SessionID identifies the current load; it changes on every restart.
func (c *Controller) SessionID() string { return c.sessionID }

// Current returns the word being asked, or nil outside PhaseTesting
// and PhaseFeedback.
func (c *Controller) Current() *vocab.Word { return c.current }

// Question returns the rendered question for the current word.
func (c *Controller) Question() *quiz.Question { return c.question }

// Advisory explains a modality substitution for the current word.
func (c *Controller) Advisory() string { return c.advisory }

// Feedback returns the verdict of the last answer while in PhaseFeedback.
func (c *Controller) Feedback() *Feedback { return c.feedback }

// LoadErr is the error from the last load, if the pool couldn't be read.
func (c *Controller) LoadErr() error { return c.loadErr }

// PoolSize returns the number of words in the session pool.
func (c *Controller) PoolSize() int { return len(c.pool) }

// Remaining returns how many pool words have not been tested yet,
// counting the one on screen.
func (c *Controller) Remaining() int {
	return len(c.pool) - len(c.tested)
}

// Tested reports whether the word with id was already asked this session.
func (c *Controller) Tested(id string) bool { return c.tested[id] }
