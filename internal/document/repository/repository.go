package repository

import (
	"context"

	"github.com/docuvault/docuvault/internal/document"
)

// Repository defines the persistence operations the document service needs.
type Repository interface {
	Create(ctx context.Context, doc *document.Document) (string, error)
	Get(ctx context.Context, id string) (*document.Document, error)
	GetByTitle(ctx context.Context, title string) (*document.Document, error)
	Search(ctx context.Context, params document.SearchParams, page document.Pagination) ([]*document.Document, error)
	ListByRole(ctx context.Context, roleID string, limit int64) ([]*document.Document, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]*document.Document, error)
	Update(ctx context.Context, id string, patch document.Patch) error
	Delete(ctx context.Context, id string) error
}
