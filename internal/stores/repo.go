package stores

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/repo"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// validSortColumns is the allow-list for store listing order. average_rating
// sorts on the aggregate alias; everything else maps to a stores column.
var validSortColumns = map[string]string{
	"name":           "stores.name",
	"email":          "stores.email",
	"address":        "stores.address",
	"created_at":     "stores.created_at",
	"average_rating": "average_rating",
}

// Repository handles store persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error) {
	store := dto.ToModel()
	if err := r.DB(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByEmail retrieves the store registered under the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwner returns the store owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

type storeWithRatingRow struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Address       string
	OwnerID       uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AverageRating *float64
	UserRating    *int
}

// ListWithRatings returns stores matching the filter decorated with their
// average score. When raterID is set, each row also carries that user's own
// rating.
func (r *Repository) ListWithRatings(ctx context.Context, raterID *uuid.UUID, filter ListFilter) ([]StoreWithRatingDTO, error) {
	query := r.DB(ctx).Model(&models.Store{}).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id, stores.name, stores.email, stores.address, stores.owner_id, stores.created_at, stores.updated_at")

	if raterID != nil {
		query = query.Select(`stores.id, stores.name, stores.email, stores.address, stores.owner_id,
			stores.created_at, stores.updated_at,
			AVG(ratings.value) AS average_rating,
			MAX(CASE WHEN ratings.user_id = ? THEN ratings.value END) AS user_rating`, *raterID)
	} else {
		query = query.Select(`stores.id, stores.name, stores.email, stores.address, stores.owner_id,
			stores.created_at, stores.updated_at,
			AVG(ratings.value) AS average_rating,
			NULL AS user_rating`)
	}

	if filter.Name != "" {
		query = query.Where("stores.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("stores.email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Address != "" {
		query = query.Where("stores.address LIKE ?", "%"+filter.Address+"%")
	}

	var rows []storeWithRatingRow
	if err := query.Order(orderClause(filter.SortBy, filter.Order)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	dtos := make([]StoreWithRatingDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, StoreWithRatingDTO{
			StoreDTO: StoreDTO{
				ID:        row.ID,
				Name:      row.Name,
				Email:     row.Email,
				Address:   row.Address,
				OwnerID:   row.OwnerID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			AverageRating: ratings.RoundAverage(row.AverageRating),
			UserRating:    row.UserRating,
		})
	}
	return dtos, nil
}

// Count totals every store row for the admin dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Store{}).Count(&count).Error
	return count, err
}

func orderClause(sortBy, order string) string {
	column, ok := validSortColumns[strings.ToLower(sortBy)]
	if !ok {
		column = "stores.name"
	}
	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
