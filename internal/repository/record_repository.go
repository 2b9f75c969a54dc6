package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecordRepository interface {
	// GetList записи пользователя по фильтру, новые первыми
	GetList(ctx context.Context, userID uuid.UUID, filter models.FilterForm, limit int) ([]models.RecordItem, error)
	Count(ctx context.Context, userID uuid.UUID, filter models.FilterForm) (int64, error)
}

type recordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

func (r *recordRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

// recordFilter собирает условия WHERE; $1 всегда user_id
func recordFilter(userID uuid.UUID, filter models.FilterForm) (string, []any) {
	conditions := []string{"r.user_id = $1", "r.deleted_at IS NULL"}
	args := []any{userID}
	argIndex := 2

	if filter.RecordType != nil {
		conditions = append(conditions, fmt.Sprintf("r.record_type = $%d", argIndex))
		args = append(args, *filter.RecordType)
		argIndex++

		// категория без типа не имеет смысла
		if filter.CategoryID != nil {
			conditions = append(conditions, fmt.Sprintf("r.category_id = $%d", argIndex))
			args = append(args, *filter.CategoryID)
			argIndex++
		}
	}

	if filter.AccountID != nil {
		// перевод виден и со стороны счета получателя
		conditions = append(conditions, fmt.Sprintf("(r.account_id = $%d OR r.target_account_id = $%d)", argIndex, argIndex))
		args = append(args, *filter.AccountID)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *recordRepository) GetList(ctx context.Context, userID uuid.UUID, filter models.FilterForm, limit int) ([]models.RecordItem, error) {
	where, args := recordFilter(userID, filter)

	query := `
		SELECT r.id, r.record_type, r.amount, r.record_time, a.name, ta.name, c.name, r.remark
		FROM records r
		JOIN accounts a ON a.id = r.account_id
		LEFT JOIN accounts ta ON ta.id = r.target_account_id
		LEFT JOIN categories c ON c.id = r.category_id
	` + where + fmt.Sprintf(" ORDER BY r.record_time DESC, r.id DESC LIMIT $%d", len(args)+1)

	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.RecordItem{}
	for rows.Next() {
		var (
			item       models.RecordItem
			recordType int16
		)
		err := rows.Scan(
			&item.ID, &recordType, &item.Amount, &item.RecordTime,
			&item.AccountName, &item.TargetAccountName, &item.CategoryName, &item.Remark,
		)
		if err != nil {
			return nil, err
		}
		item.RecordType = models.RecordType(recordType)
		records = append(records, item)
	}
	return records, rows.Err()
}

func (r *recordRepository) Count(ctx context.Context, userID uuid.UUID, filter models.FilterForm) (int64, error) {
	where, args := recordFilter(userID, filter)

	var total int64
	err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM records r`+where, args...).Scan(&total)
	return total, err
}
