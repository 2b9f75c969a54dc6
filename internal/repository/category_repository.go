package repository

import (
	"context"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	GetByType(ctx context.Context, userID uuid.UUID, recordType models.RecordType) ([]models.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, record_type, icon, color, is_system, sort_order, created_at`

func (r *categoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE (user_id = $1 OR is_system = true)
		ORDER BY record_type, sort_order, name
	`
	return r.queryCategories(ctx, query, userID)
}

func (r *categoryRepository) GetByType(ctx context.Context, userID uuid.UUID, recordType models.RecordType) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE (user_id = $1 OR is_system = true) AND record_type = $2
		ORDER BY sort_order, name
	`
	return r.queryCategories(ctx, query, userID, int16(recordType))
}

func (r *categoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]models.Category, error) {
	rows, err := GetTxOrPool(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			category   models.Category
			recordType int16
		)
		err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &recordType,
			&category.Icon, &category.Color, &category.IsSystem,
			&category.SortOrder, &category.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		category.RecordType = models.RecordType(recordType)
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
