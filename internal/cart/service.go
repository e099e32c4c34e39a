package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// Summary is the read view over all of a user's pending cart lines.
type Summary struct {
	Lines []SummaryLine `json:"lines"`
	Total int           `json:"total"`
}

// SummaryLine mirrors one staged withdrawal unit.
type SummaryLine struct {
	PartNo string `json:"part_no"`
	Qty    int    `json:"qty"`
}

// Service manages the cart lifecycle between checkouts. Callers are
// identified by UPN; the backing user row is created on first touch.
type Service interface {
	GetOrCreate(ctx context.Context, upn string) (*models.Cart, error)
	AddLine(ctx context.Context, upn, partNo string) (*models.CartLine, error)
	Summary(ctx context.Context, upn string) (*Summary, error)
	Clear(ctx context.Context, upn string) (int64, error)
}

type service struct {
	repo    Repository
	catalog catalog.Repository
}

// NewService wires a cart service with its repositories.
func NewService(repo Repository, catalogRepo catalog.Repository) (Service, error) {
	if repo == nil || catalogRepo == nil {
		return nil, fmt.Errorf("cart service requires cart and catalog repositories")
	}
	return &service{repo: repo, catalog: catalogRepo}, nil
}

// GetOrCreate returns the user's most recent cart, creating one when none
// exists. Two racing calls may each create a cart; later reads resolve the
// race by always taking the newest and summing lines across all of them.
func (s *service) GetOrCreate(ctx context.Context, upn string) (*models.Cart, error) {
	user, err := s.catalog.EnsureUser(ctx, upn)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
	}
	existing, err := s.repo.FindLatestByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to load cart")
	}
	if existing != nil {
		return existing, nil
	}
	created, err := s.repo.Create(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to create cart")
	}
	return created, nil
}

// AddLine stages one unit of the given part in the user's newest cart. The
// part is not required to exist in the catalog; shortages surface at commit
// time, not here.
func (s *service) AddLine(ctx context.Context, upn, partNo string) (*models.CartLine, error) {
	partNo = strings.TrimSpace(partNo)
	if partNo == "" {
		return nil, errors.New(errors.CodeValidation, "part_no is required").
			WithDetails(map[string]string{"field": "part_no"})
	}
	user, err := s.catalog.EnsureUser(ctx, upn)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
	}
	current, err := s.repo.FindLatestByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to load cart")
	}
	if current == nil {
		return nil, errors.New(errors.CodeCartNotFound, "no cart exists for user")
	}
	line, err := s.repo.AddLine(ctx, current.ID, partNo)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to add cart line")
	}
	return line, nil
}

// Summary lists every pending line across all of the user's carts, ordered
// by part number.
func (s *service) Summary(ctx context.Context, upn string) (*Summary, error) {
	user, err := s.catalog.EnsureUser(ctx, upn)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
	}
	lines, err := s.repo.ListLinesByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list cart lines")
	}
	out := &Summary{Lines: make([]SummaryLine, 0, len(lines))}
	for _, l := range lines {
		out.Lines = append(out.Lines, SummaryLine{PartNo: l.PartNo, Qty: l.Qty})
		out.Total += l.Qty
	}
	return out, nil
}

// Clear removes every pending line across all of the user's carts. Clearing
// an already-empty cart is not an error.
func (s *service) Clear(ctx context.Context, upn string) (int64, error) {
	user, err := s.catalog.EnsureUser(ctx, upn)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "failed to resolve user")
	}
	removed, err := s.repo.ClearLinesByUser(ctx, user.ID)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "failed to clear cart")
	}
	return removed, nil
}
