package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Service exposes the paged audit-trail read.
type Service interface {
	List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, error)
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// List returns a page of ledger entries newest-first. Limit and offset are
// clamped rather than rejected; an unknown action filter is a validation
// error.
func (s *service) List(ctx context.Context, filter Filter, page pagination.Params) ([]Entry, error) {
	filter.Action = strings.TrimSpace(filter.Action)
	filter.PartNo = strings.TrimSpace(filter.PartNo)
	filter.WorkOrderNo = strings.TrimSpace(filter.WorkOrderNo)
	if filter.Action != "" && !enums.TxnType(filter.Action).IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown action filter").
			WithDetails(map[string]string{"action": filter.Action})
	}

	rows, err := s.repo.List(ctx, filter, pagination.Normalize(page))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list ledger entries")
	}
	return rows, nil
}
