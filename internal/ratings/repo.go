package ratings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ratewise/ratewise-backend/internal/repo"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// Repository handles rating persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Upsert writes the caller's score for a store. A resubmission for the same
// (user, store) pair overwrites the previous value in place.
func (r *Repository) Upsert(ctx context.Context, userID, storeID uuid.UUID, value int) (*models.Rating, error) {
	rating := &models.Rating{
		UserID:  userID,
		StoreID: storeID,
		Value:   value,
	}
	err := r.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      value,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}

	// Re-read so callers see the surviving row, not the insert attempt.
	var persisted models.Rating
	if err := r.DB(ctx).
		First(&persisted, "user_id = ? AND store_id = ?", userID, storeID).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}

// Find loads the caller's rating for a store.
func (r *Repository) Find(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := r.DB(ctx).
		First(&rating, "user_id = ? AND store_id = ?", userID, storeID).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// AverageFor computes the mean score for a store. It returns nil, not zero,
// when the store has no ratings.
func (r *Repository) AverageFor(ctx context.Context, storeID uuid.UUID) (*float64, error) {
	var avg *float64
	err := r.DB(ctx).
		Model(&models.Rating{}).
		Where("store_id = ?", storeID).
		Select("AVG(value)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

// RatersFor lists everyone who rated a store, most recent activity first.
func (r *Repository) RatersFor(ctx context.Context, storeID uuid.UUID) ([]RaterDTO, error) {
	var raters []RaterDTO
	err := r.DB(ctx).
		Model(&models.Rating{}).
		Select("ratings.user_id, users.name, users.email, ratings.value, ratings.updated_at AS rated_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.updated_at DESC").
		Scan(&raters).Error
	if err != nil {
		return nil, err
	}
	return raters, nil
}

// Count totals every rating row for the admin dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Rating{}).Count(&count).Error
	return count, err
}
