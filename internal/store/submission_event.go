package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var submissionEventColumns = []string{
	"sequence", "timestamp", "session_id", "endpoint", "success",
	"has_potential_depression", "score", "message", "error_message",
	"status_code", "latency_ms", "answers",
}

func (r *eventRepo) AppendSubmission(ctx context.Context, data SubmissionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	answers := data.Answers
	if answers == "" {
		answers = "{}"
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSubmissionEvents).
		Columns(submissionEventColumns...).
		Values(
			seqNum,
			formatTimestamp(time.Now()),
			data.SessionID,
			data.Endpoint,
			data.Success,
			data.HasPotentialDepression,
			data.Score,
			data.Message,
			data.ErrorMessage,
			data.StatusCode,
			data.LatencyMs,
			answers,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *eventRepo) Submissions(ctx context.Context, opts QueryOpts) ([]SubmissionEvent, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(submissionEventColumns...).From(b.Table(tableSubmissionEvents))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query submission events: %w", err)
	}
	defer rows.Close()

	var events []SubmissionEvent
	for rows.Next() {
		var (
			e  SubmissionEvent
			ts string
		)
		err := rows.Scan(
			&e.Sequence, &ts, &e.SessionID, &e.Endpoint, &e.Success,
			&e.HasPotentialDepression, &e.Score, &e.Message, &e.ErrorMessage,
			&e.StatusCode, &e.LatencyMs, &e.Answers,
		)
		if err != nil {
			return nil, fmt.Errorf("scan submission event: %w", err)
		}
		if e.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) Prune(ctx context.Context, keep int) error {
	b := entsql.Dialect(dialect.SQLite)

	var threshold int64
	if keep > 0 {
		// Sequence of the oldest submission that survives.
		query, args := b.Select("sequence").
			From(b.Table(tableSubmissionEvents)).
			OrderBy(entsql.Desc("sequence")).
			Limit(1).
			Offset(keep - 1).
			Query()

		rows := &entsql.Rows{}
		if err := r.drv.Query(ctx, query, args, rows); err != nil {
			return fmt.Errorf("query prune threshold: %w", err)
		}
		err := entsql.ScanOne(rows, &threshold)
		rows.Close()
		if errors.Is(err, sql.ErrNoRows) {
			// Fewer than keep submissions exist.
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}

	for _, table := range []string{tableSubmissionEvents, tableSessionEvents} {
		del := b.Delete(table)
		if threshold > 0 {
			del.Where(entsql.LT("sequence", threshold))
		}
		query, args := del.Query()
		if err := r.drv.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("prune %s: %w", table, err)
		}
	}
	return nil
}
