package admin

import (
	"context"
	"fmt"

	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type userCounter interface {
	CountNonAdmin(ctx context.Context) (int64, error)
}

type storeCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ratingCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsDTO is the admin dashboard payload. Users excludes admin accounts.
type StatsDTO struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// Service exposes the admin dashboard aggregates.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
}

// ServiceParams bundles the counters backing the dashboard.
type ServiceParams struct {
	Users   userCounter
	Stores  storeCounter
	Ratings ratingCounter
}

type service struct {
	users   userCounter
	stores  storeCounter
	ratings ratingCounter
}

// NewService constructs an admin service with the provided counters.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user counter is required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store counter is required")
	}
	if params.Ratings == nil {
		return nil, fmt.Errorf("rating counter is required")
	}
	return &service{
		users:   params.Users,
		stores:  params.Stores,
		ratings: params.Ratings,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	userCount, err := s.users.CountNonAdmin(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	storeCount, err := s.stores.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	ratingCount, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count ratings")
	}

	return &StatsDTO{
		TotalUsers:   userCount,
		TotalStores:  storeCount,
		TotalRatings: ratingCount,
	}, nil
}
