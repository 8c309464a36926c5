package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

type stubOwnerUserRepo struct {
	data      map[string]*models.User
	created   *models.User
	assigned  *uuid.UUID
	createErr error
	assignErr error
}

func newStubOwnerUserRepo() *stubOwnerUserRepo {
	return &stubOwnerUserRepo{data: map[string]*models.User{}}
}

func (s *stubOwnerUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOwnerUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func (s *stubOwnerUserRepo) AssignStore(_ context.Context, _ uuid.UUID, storeID uuid.UUID) error {
	if s.assignErr != nil {
		return s.assignErr
	}
	s.assigned = &storeID
	return nil
}

type stubTxStoreRepo struct {
	data      map[string]*models.Store
	created   *models.Store
	createErr error
}

func newStubTxStoreRepo() *stubTxStoreRepo {
	return &stubTxStoreRepo{data: map[string]*models.Store{}}
}

func (s *stubTxStoreRepo) Create(_ context.Context, dto CreateStoreDTO) (*models.Store, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	store := dto.ToModel()
	store.ID = uuid.New()
	s.data[dto.Email] = store
	s.created = store
	return store, nil
}

func (s *stubTxStoreRepo) FindByEmail(_ context.Context, email string) (*models.Store, error) {
	if store, ok := s.data[email]; ok {
		return store, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubListRepo struct {
	rows []StoreWithRatingDTO
	err  error

	lastRater *uuid.UUID
}

func (s *stubListRepo) ListWithRatings(_ context.Context, raterID *uuid.UUID, _ ListFilter) ([]StoreWithRatingDTO, error) {
	s.lastRater = raterID
	return s.rows, s.err
}

type serviceTestSetup struct {
	service   Service
	userRepo  *stubOwnerUserRepo
	storeRepo *stubTxStoreRepo
	listRepo  *stubListRepo
}

func newServiceTestSetup(t *testing.T) *serviceTestSetup {
	t.Helper()

	userRepo := newStubOwnerUserRepo()
	storeRepo := newStubTxStoreRepo()
	listRepo := &stubListRepo{}
	svc, err := NewService(ServiceParams{
		TxRunner: stubTxRunner{},
		Repo:     listRepo,
		UserRepoFactory: func(_ *gorm.DB) OwnerUserRepository {
			return userRepo
		},
		StoreRepoFactory: func(_ *gorm.DB) TxStoreRepository {
			return storeRepo
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &serviceTestSetup{
		service:   svc,
		userRepo:  userRepo,
		storeRepo: storeRepo,
		listRepo:  listRepo,
	}
}

func sampleInput(email string) CreateWithOwnerInput {
	return CreateWithOwnerInput{
		Name:      "Neighborhood Grocery and Provisions",
		Email:     email,
		Address:   "88 Commerce Way",
		OwnerName: "Morgan the Proprietor of Provisions",
		Password:  "Sup3rSecret!",
	}
}

func TestCreateWithOwnerHappyPath(t *testing.T) {
	setup := newServiceTestSetup(t)

	created, err := setup.service.CreateWithOwner(context.Background(), sampleInput("newstore@example.com"))
	if err != nil {
		t.Fatalf("create with owner: %v", err)
	}

	if setup.userRepo.created == nil {
		t.Fatal("expected owner user to be created")
	}
	if setup.userRepo.created.Role != enums.RoleStoreOwner {
		t.Fatalf("expected owner role store_owner, got %s", setup.userRepo.created.Role)
	}
	if setup.userRepo.created.PasswordHash == "Sup3rSecret!" {
		t.Fatal("expected password to be hashed before persistence")
	}
	if setup.storeRepo.created == nil {
		t.Fatal("expected store to be created")
	}
	if setup.storeRepo.created.OwnerID != setup.userRepo.created.ID {
		t.Fatal("store not linked to created owner")
	}
	if setup.userRepo.assigned == nil || *setup.userRepo.assigned != setup.storeRepo.created.ID {
		t.Fatal("owner not backfilled with store id")
	}
	if created.Owner == nil || created.Owner.StoreID == nil || *created.Owner.StoreID != created.Store.ID {
		t.Fatal("response owner missing store id")
	}
}

func TestCreateWithOwnerNormalizesEmail(t *testing.T) {
	setup := newServiceTestSetup(t)

	created, err := setup.service.CreateWithOwner(context.Background(), sampleInput("  Mixed.Case@Example.COM "))
	if err != nil {
		t.Fatalf("create with owner: %v", err)
	}
	if created.Store.Email != "mixed.case@example.com" {
		t.Fatalf("expected normalized store email, got %q", created.Store.Email)
	}
}

func TestCreateWithOwnerUserEmailConflict(t *testing.T) {
	setup := newServiceTestSetup(t)
	setup.userRepo.data["taken@example.com"] = &models.User{ID: uuid.New(), Email: "taken@example.com"}

	_, err := setup.service.CreateWithOwner(context.Background(), sampleInput("taken@example.com"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if setup.storeRepo.created != nil {
		t.Fatal("expected no store creation on conflict")
	}
}

func TestCreateWithOwnerStoreEmailConflict(t *testing.T) {
	setup := newServiceTestSetup(t)
	setup.storeRepo.data["taken@example.com"] = &models.Store{ID: uuid.New(), Email: "taken@example.com"}

	_, err := setup.service.CreateWithOwner(context.Background(), sampleInput("taken@example.com"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if setup.userRepo.created != nil {
		t.Fatal("expected no owner creation on conflict")
	}
}

func TestCreateWithOwnerRollsBackOnConflict(t *testing.T) {
	db := setupStoresTestDB(t)
	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'user',
  store_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersTable).Error)

	svc, err := NewService(ServiceParams{
		TxRunner: gormTxRunner{db: db},
		Repo:     NewRepository(db),
		UserRepoFactory: func(tx *gorm.DB) OwnerUserRepository {
			return users.NewRepository(tx)
		},
		StoreRepoFactory: func(tx *gorm.DB) TxStoreRepository {
			return NewRepository(tx)
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	require.NoError(t, err)

	email := uuid.NewString()[:8] + "@example.com"
	existing := &models.Store{
		ID:      uuid.New(),
		Name:    "Pre-existing Storefront",
		Email:   email,
		Address: "1 Conflict Ct",
		OwnerID: uuid.New(),
	}
	require.NoError(t, db.Create(existing).Error)

	_, err = svc.CreateWithOwner(context.Background(), sampleInput(email))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The rejected transaction must leave no orphaned owner row behind.
	var orphans int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", email).Count(&orphans).Error)
	require.Zero(t, orphans)
}

func TestListForUserPassesRater(t *testing.T) {
	setup := newServiceTestSetup(t)
	raterID := uuid.New()
	setup.listRepo.rows = []StoreWithRatingDTO{{StoreDTO: StoreDTO{ID: uuid.New()}}}

	rows, err := setup.service.ListForUser(context.Background(), raterID, ListFilter{})
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if setup.listRepo.lastRater == nil || *setup.listRepo.lastRater != raterID {
		t.Fatal("expected rater id to reach repository")
	}
}

func TestListForAdminOmitsRater(t *testing.T) {
	setup := newServiceTestSetup(t)

	_, err := setup.service.ListForAdmin(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list for admin: %v", err)
	}
	if setup.listRepo.lastRater != nil {
		t.Fatal("expected no rater id for admin listing")
	}
}

func TestListDependencyError(t *testing.T) {
	setup := newServiceTestSetup(t)
	setup.listRepo.err = errors.New("boom")

	_, err := setup.service.ListForAdmin(context.Background(), ListFilter{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
