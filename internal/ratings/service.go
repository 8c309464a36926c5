package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

const (
	// MinValue and MaxValue bound an acceptable score.
	MinValue = 1
	MaxValue = 5
)

type ratingRepository interface {
	Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (*models.Rating, error)
	AverageFor(ctx context.Context, storeID uuid.UUID) (*float64, error)
	RatersFor(ctx context.Context, storeID uuid.UUID) ([]RaterDTO, error)
}

type storeReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
}

// Service exposes rating submission and the owner dashboard.
type Service interface {
	Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (*RatingDTO, error)
	OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error)
}

// ServiceParams bundles the dependencies required to build a ratings service.
type ServiceParams struct {
	Repo   ratingRepository
	Stores storeReader
}

type service struct {
	repo   ratingRepository
	stores storeReader
}

// NewService constructs a ratings service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("rating repository is required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store reader is required")
	}
	return &service{repo: params.Repo, stores: params.Stores}, nil
}

func (s *service) Submit(ctx context.Context, userID, storeID uuid.UUID, value int) (*RatingDTO, error) {
	if value < MinValue || value > MaxValue {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	rating, err := s.repo.Upsert(ctx, userID, storeID, value)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save rating")
	}
	return FromModel(rating), nil
}

func (s *service) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*OwnerDashboardDTO, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found for owner")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner store")
	}

	avg, err := s.repo.AverageFor(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store average")
	}
	raters, err := s.repo.RatersFor(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list raters")
	}

	return &OwnerDashboardDTO{
		StoreID:       store.ID,
		StoreName:     store.Name,
		AverageRating: RoundAverage(avg),
		Raters:        raters,
	}, nil
}
