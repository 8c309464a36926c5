package ratings

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/pkg/db/models"
)

// RatingDTO is the transport shape returned after a submission.
type RatingDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RaterDTO describes one rater row on the owner dashboard.
type RaterDTO struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Value   int       `json:"value"`
	RatedAt time.Time `json:"rated_at"`
}

// OwnerDashboardDTO is the payload served to a store owner. AverageRating is
// nil until the store has at least one rating.
type OwnerDashboardDTO struct {
	StoreID       uuid.UUID  `json:"store_id"`
	StoreName     string     `json:"store_name"`
	AverageRating *float64   `json:"average_rating"`
	Raters        []RaterDTO `json:"raters"`
}

// RoundAverage truncates a derived mean to two decimals for transport. The
// stored rows keep full precision; only responses are rounded. Nil passes
// through so an unrated store still serializes as null.
func RoundAverage(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	rounded := math.Round(*avg*100) / 100
	return &rounded
}

func FromModel(r *models.Rating) *RatingDTO {
	if r == nil {
		return nil
	}
	return &RatingDTO{
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
