package database

import (
	"context"
	"fmt"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("running database migrations")

	migrations := []string{
		migrationCreateAccountGroups,
		migrationCreateAccounts,
		migrationCreateCategories,
		migrationCreateRecords,
		migrationCreateIndexes,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	if err := insertDefaultCategories(ctx, pool); err != nil {
		return fmt.Errorf("default categories: %w", err)
	}

	logger.Info("migrations completed", zap.Int("count", len(migrations)))
	return nil
}

// системные категории одним батчем, повторный запуск ничего не дублирует
func insertDefaultCategories(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		INSERT INTO categories (name, record_type, icon, color, is_system, sort_order)
		VALUES ($1, $2, $3, $4, true, $5)
		ON CONFLICT DO NOTHING
	`

	batch := &pgx.Batch{}
	for i, c := range models.DefaultCategories {
		batch.Queue(query, c.Name, int16(c.RecordType), c.Icon, c.Color, i+1)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	for range models.DefaultCategories {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

const migrationCreateAccountGroups = `
CREATE TABLE IF NOT EXISTS account_groups (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL,
    name VARCHAR(100) NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);
`

const migrationCreateAccounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL,
    group_id BIGINT NOT NULL REFERENCES account_groups(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    type VARCHAR(20) NOT NULL,
    currency VARCHAR(3) NOT NULL,
    balance DECIMAL(18, 2) NOT NULL DEFAULT 0,
    icon VARCHAR(10) NOT NULL DEFAULT '',
    color VARCHAR(7) NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    deleted_at TIMESTAMP WITH TIME ZONE
);
`

const migrationCreateCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID,
    name VARCHAR(100) NOT NULL,
    record_type SMALLINT NOT NULL CHECK (record_type IN (1, 2, 3)),
    icon VARCHAR(10) NOT NULL DEFAULT '',
    color VARCHAR(7) NOT NULL DEFAULT '',
    is_system BOOLEAN NOT NULL DEFAULT false,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_system_name
    ON categories(name, record_type) WHERE is_system;
`

const migrationCreateRecords = `
CREATE TABLE IF NOT EXISTS records (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL,
    record_type SMALLINT NOT NULL CHECK (record_type IN (1, 2, 3)),
    amount DECIMAL(18, 2) NOT NULL,
    record_time TIMESTAMP WITH TIME ZONE NOT NULL,
    account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    target_account_id BIGINT REFERENCES accounts(id) ON DELETE SET NULL,
    category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
    remark TEXT,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    deleted_at TIMESTAMP WITH TIME ZONE
);
`

const migrationCreateIndexes = `
CREATE INDEX IF NOT EXISTS idx_account_groups_user_id ON account_groups(user_id);
CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id);
CREATE INDEX IF NOT EXISTS idx_accounts_group_sort ON accounts(group_id, sort_order);
CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id);
CREATE INDEX IF NOT EXISTS idx_categories_record_type ON categories(record_type);
CREATE INDEX IF NOT EXISTS idx_records_user_time ON records(user_id, record_time DESC);
CREATE INDEX IF NOT EXISTS idx_records_account_id ON records(account_id);
CREATE INDEX IF NOT EXISTS idx_records_target_account_id ON records(target_account_id);
CREATE INDEX IF NOT EXISTS idx_records_category_id ON records(category_id);
`
