package store

import (
	"context"
	"fmt"
	"time"
)

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "word_id", "word", "modality",
	"correct", "given_answer", "expected_answer", "tier_before", "tier_after", "time_ms",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, AnswerEventsTable.Name,
		answerEventColumns[3:],
		[]any{
			data.SessionID, data.WordID, data.Word, data.Modality,
			data.Correct, data.GivenAnswer, data.ExpectedAnswer,
			data.TierBefore, data.TierAfter, data.TimeMs,
		})
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	return r.appendEvent(ctx, SessionEventsTable.Name,
		[]string{"session_id", "action", "filter", "quiz", "pool_size", "answered", "correct"},
		[]any{data.SessionID, data.Action, data.Filter, data.Quiz, data.PoolSize, data.Answered, data.Correct})
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	b := r.s.builder()
	sel := applyQueryOpts(b.Select(answerEventColumns...).From(b.Table(AnswerEventsTable.Name)), opts)
	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.WordID, &e.Word, &e.Modality,
			&e.Correct, &e.GivenAnswer, &e.ExpectedAnswer,
			&e.TierBefore, &e.TierAfter, &e.TimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DailyAnswerAccuracy groups in Go rather than SQL so day boundaries
// follow the local time zone on every backend.
func (r *eventRepo) DailyAnswerAccuracy(ctx context.Context, days int, now time.Time) ([]DailyAccuracy, error) {
	if days <= 0 {
		return nil, nil
	}
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	events, err := r.QueryAnswers(ctx, QueryOpts{From: start})
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*DailyAccuracy)
	var order []time.Time
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		ly, lm, ld := e.Timestamp.In(now.Location()).Date()
		key := time.Date(ly, lm, ld, 0, 0, 0, 0, now.Location())
		acc, ok := byDay[key]
		if !ok {
			acc = &DailyAccuracy{Date: key}
			byDay[key] = acc
			order = append(order, key)
		}
		acc.Total++
		if e.Correct {
			acc.Correct++
		}
	}

	out := make([]DailyAccuracy, 0, len(order))
	for _, k := range order {
		out = append(out, *byDay[k])
	}
	return out, nil
}
