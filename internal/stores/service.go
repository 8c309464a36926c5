package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OwnerUserRepository is the slice of the users repository the onboarding
// transaction needs.
type OwnerUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	AssignStore(ctx context.Context, id, storeID uuid.UUID) error
}

// TxStoreRepository is the store repository surface used inside the
// onboarding transaction.
type TxStoreRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByEmail(ctx context.Context, email string) (*models.Store, error)
}

type listStoreRepository interface {
	ListWithRatings(ctx context.Context, raterID *uuid.UUID, filter ListFilter) ([]StoreWithRatingDTO, error)
}

// Service exposes store listing and the store-with-owner onboarding flow.
type Service interface {
	CreateWithOwner(ctx context.Context, input CreateWithOwnerInput) (*CreatedStoreDTO, error)
	ListForUser(ctx context.Context, raterID uuid.UUID, filter ListFilter) ([]StoreWithRatingDTO, error)
	ListForAdmin(ctx context.Context, filter ListFilter) ([]StoreWithRatingDTO, error)
}

// ServiceParams packages the dependencies for the stores service. The repo
// factories let the onboarding transaction bind fresh repositories to the
// transaction handle.
type ServiceParams struct {
	TxRunner         txRunner
	Repo             listStoreRepository
	UserRepoFactory  func(tx *gorm.DB) OwnerUserRepository
	StoreRepoFactory func(tx *gorm.DB) TxStoreRepository
	PasswordConfig   config.PasswordConfig
}

type service struct {
	tx           txRunner
	repo         listStoreRepository
	userFactory  func(tx *gorm.DB) OwnerUserRepository
	storeFactory func(tx *gorm.DB) TxStoreRepository
	passwordCfg  config.PasswordConfig
}

// NewService builds a stores service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("store repository is required")
	}
	if params.UserRepoFactory == nil {
		return nil, fmt.Errorf("user repo factory is required")
	}
	if params.StoreRepoFactory == nil {
		return nil, fmt.Errorf("store repo factory is required")
	}
	return &service{
		tx:           params.TxRunner,
		repo:         params.Repo,
		userFactory:  params.UserRepoFactory,
		storeFactory: params.StoreRepoFactory,
		passwordCfg:  params.PasswordConfig,
	}, nil
}

// CreateWithOwner onboards a store and its owner account in one transaction.
// Either both rows commit or neither does.
func (s *service) CreateWithOwner(ctx context.Context, input CreateWithOwnerInput) (*CreatedStoreDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	ownerName := strings.TrimSpace(input.OwnerName)
	if ownerName == "" {
		ownerName = input.Name
	}

	passwordHash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var (
		owner *models.User
		store *models.Store
	)
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := s.userFactory(tx)
		storeRepo := s.storeFactory(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user email")
		}
		if _, err := storeRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store email")
		}

		owner, err = userRepo.Create(ctx, users.CreateUserDTO{
			Name:         ownerName,
			Email:        email,
			PasswordHash: passwordHash,
			Address:      input.Address,
			Role:         enums.RoleStoreOwner,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create owner")
		}

		store, err = storeRepo.Create(ctx, CreateStoreDTO{
			Name:    input.Name,
			Email:   email,
			Address: input.Address,
			OwnerID: owner.ID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
		}

		if err := userRepo.AssignStore(ctx, owner.ID, store.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "associate store with owner")
		}
		return nil
	})
	if txErr != nil {
		if db.IsUniqueViolation(txErr, "users_email_key") || db.IsUniqueViolation(txErr, "stores_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, txErr
	}

	owner.StoreID = &store.ID
	return &CreatedStoreDTO{
		Store: *FromModel(store),
		Owner: users.FromModel(owner),
	}, nil
}

func (s *service) ListForUser(ctx context.Context, raterID uuid.UUID, filter ListFilter) ([]StoreWithRatingDTO, error) {
	rows, err := s.repo.ListWithRatings(ctx, &raterID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return rows, nil
}

func (s *service) ListForAdmin(ctx context.Context, filter ListFilter) ([]StoreWithRatingDTO, error) {
	rows, err := s.repo.ListWithRatings(ctx, nil, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return rows, nil
}
