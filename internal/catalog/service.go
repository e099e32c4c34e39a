package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service exposes the read-only catalog listing.
type Service interface {
	ListAvailability(ctx context.Context, search string) ([]PartAvailability, error)
}

type service struct {
	repo Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListAvailability(ctx context.Context, search string) ([]PartAvailability, error) {
	return s.repo.ListAvailability(ctx, strings.TrimSpace(search))
}
