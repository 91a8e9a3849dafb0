package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SummaryRepository handles stored article summaries, keyed by article url
type SummaryRepository struct {
	db       *sqlx.DB
	notifier *notifier
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *sqlx.DB, n *notifier) *SummaryRepository {
	if n == nil {
		n = newNotifier()
	}
	return &SummaryRepository{db: db, notifier: n}
}

// GetSummary returns the stored summary for url, empty string if none
func (r *SummaryRepository) GetSummary(ctx context.Context, url string) (string, error) {
	var summary string
	err := r.db.GetContext(ctx, &summary, "SELECT summary FROM summaries WHERE url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get summary for %s: %w", url, err)
	}
	return summary, nil
}

// SaveSummary stores the summary for url, overwriting a previous one
func (r *SummaryRepository) SaveSummary(ctx context.Context, url, summary string) error {
	query := `
		INSERT INTO summaries (url, summary, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(url) DO UPDATE SET
			summary = excluded.summary,
			updated_at = CURRENT_TIMESTAMP`

	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, url, summary)
		return err
	})
	if err != nil {
		return fmt.Errorf("save summary for %s: %w", url, err)
	}

	r.notifier.publish(topicSummary(url))
	return nil
}

// WatchSummary streams the stored summary of url. Empty string means no summary yet.
// The channel is closed when ctx is done.
func (r *SummaryRepository) WatchSummary(ctx context.Context, url string) <-chan string {
	query := func(ctx context.Context) (string, error) { return r.GetSummary(ctx, url) }
	equal := func(a, b string) bool { return a == b }
	return watchQuery(ctx, r.notifier, topicSummary(url), query, equal)
}
