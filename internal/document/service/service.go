package service

import (
	"context"

	"github.com/docuvault/docuvault/internal/access"
	"github.com/docuvault/docuvault/internal/document"
	"github.com/docuvault/docuvault/internal/document/repository"
	"github.com/docuvault/docuvault/internal/roles"
	"github.com/docuvault/docuvault/internal/users"
)

// Service orchestrates document operations: referential checks on create,
// filter-based listing, and policy-gated mutation. Store failures are
// returned unwrapped so the transport layer can surface them verbatim.
type Service struct {
	docs   repository.Repository
	roles  roles.Repository
	users  users.Repository
	policy access.Policy
}

func New(docs repository.Repository, roleRepo roles.Repository, userRepo users.Repository, policy access.Policy) *Service {
	return &Service{docs: docs, roles: roleRepo, users: userRepo, policy: policy}
}

// CreateInput carries the fields accepted by Create.
type CreateInput struct {
	Title   string
	Content string
	UserID  string
	Role    string
}

// Create persists a new document after three ordered, fail-fast checks:
// the role must exist, then the user must exist, then the title must be
// unique. No write happens on any failure path. The uniqueness probe is
// read-then-write with no atomic guard; concurrent creates with the same
// title can race past it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*document.Document, error) {
	role, err := s.roles.Get(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, document.ErrRoleNotFound
	}

	user, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, document.ErrUserNotFound
	}

	existing, err := s.docs.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, document.ErrDuplicateTitle
	}

	doc := &document.Document{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
		Role:    in.Role,
	}
	if _, err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns documents matching the search parameters within the given
// window, newest first. An empty result is a valid response, not an error;
// this deliberately differs from the by-id/by-role/by-user lookups.
func (s *Service) List(ctx context.Context, params document.SearchParams, page document.Pagination) ([]*document.Document, error) {
	return s.docs.Search(ctx, params, page)
}

// GetByID returns the document or document.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*document.Document, error) {
	return s.docs.Get(ctx, id)
}

// GetByRole returns documents tagged with the role, newest first. Zero
// matches is document.ErrNotFound. Limit 0 means unlimited.
func (s *Service) GetByRole(ctx context.Context, roleID string, limit int64) ([]*document.Document, error) {
	docs, err := s.docs.ListByRole(ctx, roleID, limit)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, document.ErrNotFound
	}
	return docs, nil
}

// GetByUser returns documents owned by the user, newest first. Zero matches
// is document.ErrNotFound. Limit 0 means unlimited.
func (s *Service) GetByUser(ctx context.Context, userID string, limit int64) ([]*document.Document, error) {
	docs, err := s.docs.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, document.ErrNotFound
	}
	return docs, nil
}

// Update applies a field patch to an existing document. Existence is checked
// before ownership, so a missing document reports ErrNotFound even to a
// principal who would have been denied. The patched document is not
// re-fetched.
func (s *Service) Update(ctx context.Context, pr access.Principal, id string, patch document.Patch) error {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.MayMutate(pr, doc) {
		return document.ErrAccessDenied
	}
	return s.docs.Update(ctx, id, patch)
}

// Delete physically removes the document, with the same existence-then-
// ownership check order as Update.
func (s *Service) Delete(ctx context.Context, pr access.Principal, id string) error {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.MayMutate(pr, doc) {
		return document.ErrAccessDenied
	}
	return s.docs.Delete(ctx, id)
}
