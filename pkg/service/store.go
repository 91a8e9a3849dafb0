package service

import (
	"context"

	"github.com/umputun/newsread/pkg/domain"
	"github.com/umputun/newsread/pkg/repository"
)

// Store provides category-level access to the cached articles and summaries for the sync coordinator
type Store struct {
	articleRepo *repository.ArticleRepository
	summaryRepo *repository.SummaryRepository
}

// NewStore creates a new store on top of repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		articleRepo: repos.Article,
		summaryRepo: repos.Summary,
	}
}

// Article listing methods

func (s *Store) GetArticles(ctx context.Context, cat domain.Category) ([]domain.Article, error) {
	return s.articleRepo.GetArticles(ctx, cat.ID())
}

func (s *Store) WatchArticles(ctx context.Context, cat domain.Category) <-chan []domain.Article {
	return s.articleRepo.WatchArticles(ctx, cat.ID())
}

func (s *Store) ReplaceArticles(ctx context.Context, cat domain.Category, articles []domain.Article) error {
	return s.articleRepo.ReplaceArticles(ctx, cat.ID(), articles)
}

// Summary methods

func (s *Store) GetSummary(ctx context.Context, url string) (string, error) {
	return s.summaryRepo.GetSummary(ctx, url)
}

func (s *Store) WatchSummary(ctx context.Context, url string) <-chan string {
	return s.summaryRepo.WatchSummary(ctx, url)
}

func (s *Store) SaveSummary(ctx context.Context, url, summary string) error {
	return s.summaryRepo.SaveSummary(ctx, url, summary)
}
