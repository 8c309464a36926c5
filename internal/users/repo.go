package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/repo"
	"github.com/ratewise/ratewise-backend/pkg/db/models"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

// validSortColumns is the allow-list for admin list ordering. Anything not
// listed falls back to name to keep raw input out of the ORDER BY clause.
var validSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"created_at": "created_at",
}

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored credential digest.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// AssignStore links an owner account to its store.
func (r *Repository) AssignStore(ctx context.Context, id, storeID uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("store_id", storeID).Error
}

// List returns users matching the filter, ordered per the sort allow-list.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.User, error) {
	query := r.DB(ctx).Model(&models.User{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Address != "" {
		query = query.Where("address LIKE ?", "%"+filter.Address+"%")
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var users []models.User
	if err := query.Order(orderClause(filter.SortBy, filter.Order)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountNonAdmin counts regular and owner accounts for the admin dashboard.
func (r *Repository) CountNonAdmin(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("role <> ?", enums.RoleAdmin).
		Count(&count).Error
	return count, err
}

func orderClause(sortBy, order string) string {
	column, ok := validSortColumns[strings.ToLower(sortBy)]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
