package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsread/pkg/domain"
)

// ArticleRepository handles cached article listings
type ArticleRepository struct {
	db       *sqlx.DB
	notifier *notifier
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB, n *notifier) *ArticleRepository {
	if n == nil {
		n = newNotifier()
	}
	return &ArticleRepository{db: db, notifier: n}
}

// articleSQL is the database representation of a cached article
type articleSQL struct {
	URL        string         `db:"url"`
	CategoryID int            `db:"category_id"`
	Title      string         `db:"title"`
	Summary    sql.NullString `db:"summary"`
	Thumbnail  string         `db:"thumbnail"`
	Position   int            `db:"position"`
}

func (a articleSQL) toDomain() domain.Article {
	return domain.Article{
		Title:     a.Title,
		Summary:   a.Summary.String,
		Thumbnail: a.Thumbnail,
		URL:       a.URL,
	}
}

func fromDomainArticle(categoryID, position int, a domain.Article) articleSQL {
	return articleSQL{
		URL:        a.URL,
		CategoryID: categoryID,
		Title:      a.Title,
		Summary:    sql.NullString{String: a.Summary, Valid: a.Summary != ""},
		Thumbnail:  a.Thumbnail,
		Position:   position,
	}
}

// GetArticles returns cached articles of a category in the order they were fetched
func (r *ArticleRepository) GetArticles(ctx context.Context, categoryID int) ([]domain.Article, error) {
	query := `
		SELECT url, category_id, title, summary, thumbnail, position
		FROM articles
		WHERE category_id = ?
		ORDER BY position, url`

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, categoryID); err != nil {
		return nil, fmt.Errorf("get articles for category %d: %w", categoryID, err)
	}

	result := make([]domain.Article, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// CountArticles returns the number of cached articles in a category
func (r *ArticleRepository) CountArticles(ctx context.Context, categoryID int) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE category_id = ?", categoryID); err != nil {
		return 0, fmt.Errorf("count articles for category %d: %w", categoryID, err)
	}
	return count, nil
}

// ReplaceArticles atomically swaps the cached listing of a category for the given articles.
// Watchers observe either the old listing or the new one, never a partial state.
func (r *ArticleRepository) ReplaceArticles(ctx context.Context, categoryID int, articles []domain.Article) error {
	insert := `
		INSERT OR REPLACE INTO articles (url, category_id, title, summary, thumbnail, position, synced_at)
		VALUES (:url, :category_id, :title, :summary, :thumbnail, :position, CURRENT_TIMESTAMP)`

	err := withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE category_id = ?", categoryID); err != nil {
				return fmt.Errorf("clear category: %w", err)
			}
			for i, a := range articles {
				if _, err := tx.NamedExecContext(ctx, insert, fromDomainArticle(categoryID, i, a)); err != nil {
					return fmt.Errorf("insert article %s: %w", a.URL, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("replace articles for category %d: %w", categoryID, err)
	}

	r.notifier.publish(topicArticles)
	return nil
}

// WatchArticles streams the cached listing of a category. The current listing is sent first,
// then a new one after every change. The channel is closed when ctx is done.
func (r *ArticleRepository) WatchArticles(ctx context.Context, categoryID int) <-chan []domain.Article {
	query := func(ctx context.Context) ([]domain.Article, error) { return r.GetArticles(ctx, categoryID) }
	equal := func(a, b []domain.Article) bool { return slices.Equal(a, b) }
	return watchQuery(ctx, r.notifier, topicArticles, query, equal)
}
