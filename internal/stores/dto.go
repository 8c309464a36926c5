package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// StoreDTO is the transport shape for a single store.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreWithRatingDTO decorates a store with its derived average and, for the
// requesting user, their own submitted score. Both stay nil when absent.
type StoreWithRatingDTO struct {
	StoreDTO
	AverageRating *float64 `json:"average_rating"`
	UserRating    *int     `json:"user_rating,omitempty"`
}

// CreatedStoreDTO is returned after the store-with-owner transaction commits.
type CreatedStoreDTO struct {
	Store StoreDTO       `json:"store"`
	Owner *users.UserDTO `json:"owner"`
}

// CreateStoreDTO holds the data required by the repo to persist a new store.
type CreateStoreDTO struct {
	Name    string
	Email   string
	Address string
	OwnerID uuid.UUID
}

// CreateWithOwnerInput captures the admin payload for onboarding a store
// together with its owner account.
type CreateWithOwnerInput struct {
	Name      string
	Email     string
	Address   string
	OwnerName string
	Password  string
}

// ListFilter narrows and orders store listings.
type ListFilter struct {
	Name    string
	Email   string
	Address string
	SortBy  string
	Order   string
}

func FromModel(s *models.Store) *StoreDTO {
	if s == nil {
		return nil
	}
	return &StoreDTO{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
		OwnerID: c.OwnerID,
	}
}
