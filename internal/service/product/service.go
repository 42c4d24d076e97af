package product

import (
	"context"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service is the read-side catalog accessor the cart and storefront consume.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// Search falls back to the full active listing on a blank query.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListActive(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
