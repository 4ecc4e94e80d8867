package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tritutor/internal/itemgen"
	"tritutor/internal/llm"
)

// EventRepo appends LLM call and pipeline attempt events and answers
// the aggregate queries behind the stats command. It satisfies both
// llm.CallRecorder and itemgen.Observer.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// RecordLLMCall appends one model call event.
func (r *EventRepo) RecordLLMCall(ctx context.Context, rec llm.CallRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO llm_events (sequence, model, purpose, latency_ms, success, input_tokens, output_tokens, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, rec.Model, rec.Purpose, rec.LatencyMs, rec.Success,
		rec.InputTokens, rec.OutputTokens, rec.ErrorMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save llm event: %w", err)
	}
	return nil
}

// RecordAttempt appends one generation pipeline attempt.
func (r *EventRepo) RecordAttempt(ctx context.Context, entry itemgen.TelemetryEntry) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pipeline_events (sequence, request_id, concept_id, attempt, accepted, reason, rated_overall, fallback_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, entry.RequestID, entry.ConceptID, entry.Attempt, entry.Accepted,
		entry.Reason, entry.RatedOverall, entry.FallbackUsed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save pipeline event: %w", err)
	}
	return nil
}

// LLMStat aggregates model calls per model and purpose.
type LLMStat struct {
	Model        string
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMStats returns per-model/purpose call aggregates, busiest first.
func (r *EventRepo) LLMStats(ctx context.Context) ([]LLMStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, purpose, COUNT(*), SUM(CASE WHEN success THEN 0 ELSE 1 END), SUM(input_tokens), SUM(output_tokens)
		FROM llm_events
		GROUP BY model, purpose
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query llm stats: %w", err)
	}
	defer rows.Close()

	var stats []LLMStat
	for rows.Next() {
		var s LLMStat
		if err := rows.Scan(&s.Model, &s.Purpose, &s.Calls, &s.Failures, &s.InputTokens, &s.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// PipelineStat aggregates generation attempts.
type PipelineStat struct {
	Attempts  int
	Accepted  int
	Fallbacks int
}

// PipelineStats returns overall pipeline attempt aggregates.
func (r *EventRepo) PipelineStats(ctx context.Context) (PipelineStat, error) {
	var s PipelineStat
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN accepted THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN fallback_used THEN 1 ELSE 0 END), 0)
		FROM pipeline_events`).Scan(&s.Attempts, &s.Accepted, &s.Fallbacks)
	if err != nil {
		return PipelineStat{}, fmt.Errorf("query pipeline stats: %w", err)
	}
	return s, nil
}

// RecentAttempts returns the newest pipeline events, most recent first.
func (r *EventRepo) RecentAttempts(ctx context.Context, limit int) ([]itemgen.TelemetryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT request_id, concept_id, attempt, accepted, reason, rated_overall, fallback_used
		FROM pipeline_events
		ORDER BY sequence DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent attempts: %w", err)
	}
	defer rows.Close()

	var entries []itemgen.TelemetryEntry
	for rows.Next() {
		var e itemgen.TelemetryEntry
		if err := rows.Scan(&e.RequestID, &e.ConceptID, &e.Attempt, &e.Accepted, &e.Reason, &e.RatedOverall, &e.FallbackUsed); err != nil {
			return nil, fmt.Errorf("scan pipeline event: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
