package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository interface {
	GetGroups(ctx context.Context, userID uuid.UUID) ([]models.AccountGroup, error)
	GetGroup(ctx context.Context, userID uuid.UUID, groupID int64) (*models.AccountGroup, error)
	// GetGroupByAccountID группа, в которой сейчас лежит счет; внутри транзакции строки блокируются
	GetGroupByAccountID(ctx context.Context, userID uuid.UUID, accountID int64) (*models.AccountGroup, error)
	UpdateSortOrder(ctx context.Context, accounts []models.Account) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) db(ctx context.Context) DBTX {
	return GetTxOrPool(ctx, r.pool)
}

const accountColumns = `a.id, a.user_id, a.group_id, a.name, a.type, a.currency, a.balance, a.icon, a.color, a.sort_order, a.created_at, a.updated_at`

func scanAccount(row pgx.Row, account *models.Account) error {
	return row.Scan(
		&account.ID, &account.UserID, &account.GroupID, &account.Name, &account.Type,
		&account.Currency, &account.Balance, &account.Icon, &account.Color,
		&account.SortOrder, &account.CreatedAt, &account.UpdatedAt,
	)
}

func (r *accountRepository) GetGroups(ctx context.Context, userID uuid.UUID) ([]models.AccountGroup, error) {
	groupsQuery := `
		SELECT id, user_id, name, sort_order
		FROM account_groups
		WHERE user_id = $1
		ORDER BY sort_order, id
	`
	rows, err := r.db(ctx).Query(ctx, groupsQuery, userID)
	if err != nil {
		return nil, err
	}

	groups := []models.AccountGroup{}
	index := make(map[int64]int)
	for rows.Next() {
		var g models.AccountGroup
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.SortOrder); err != nil {
			rows.Close()
			return nil, err
		}
		g.Accounts = []models.Account{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	accountsQuery := `
		SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.user_id = $1 AND a.deleted_at IS NULL
		ORDER BY a.group_id, a.sort_order, a.id
	`
	accRows, err := r.db(ctx).Query(ctx, accountsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer accRows.Close()

	for accRows.Next() {
		var account models.Account
		if err := scanAccount(accRows, &account); err != nil {
			return nil, err
		}
		if i, ok := index[account.GroupID]; ok {
			groups[i].Accounts = append(groups[i].Accounts, account)
		}
	}
	return groups, accRows.Err()
}

func (r *accountRepository) GetGroup(ctx context.Context, userID uuid.UUID, groupID int64) (*models.AccountGroup, error) {
	query := `SELECT id, user_id, name, sort_order FROM account_groups WHERE id = $1 AND user_id = $2`

	var g models.AccountGroup
	err := r.db(ctx).QueryRow(ctx, query, groupID, userID).Scan(&g.ID, &g.UserID, &g.Name, &g.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrGroupNotFound
		}
		return nil, err
	}

	g.Accounts, err = r.groupAccounts(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *accountRepository) GetGroupByAccountID(ctx context.Context, userID uuid.UUID, accountID int64) (*models.AccountGroup, error) {
	query := `SELECT group_id FROM accounts WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	var groupID int64
	if err := r.db(ctx).QueryRow(ctx, query, accountID, userID).Scan(&groupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrAccountNotFound
		}
		return nil, err
	}
	return r.GetGroup(ctx, userID, groupID)
}

func (r *accountRepository) groupAccounts(ctx context.Context, userID uuid.UUID, groupID int64) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.user_id = $1 AND a.group_id = $2 AND a.deleted_at IS NULL
		ORDER BY a.sort_order, a.id
	`
	// в транзакции держим строки группы, чтобы параллельная перестановка подождала
	if inTx(ctx) {
		query += " FOR UPDATE"
	}

	rows, err := r.db(ctx).Query(ctx, query, userID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateSortOrder записывает SortOrder каждого счета одним батчем
func (r *accountRepository) UpdateSortOrder(ctx context.Context, accounts []models.Account) error {
	query := `UPDATE accounts SET sort_order = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	now := time.Now()
	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(query, account.ID, account.SortOrder, now)
	}

	results := r.db(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range accounts {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	query := `UPDATE accounts SET deleted_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	tag, err := r.db(ctx).Exec(ctx, query, id, userID, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}
