/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.ConsoleStore.
var _ store.ConsoleStore = (*Service)(nil)

type Service struct {
	db     *sql.DB
	ledger *LedgerService
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service, err := newServiceFromDB(db, cfg.CreateDummyUsers)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after schema failure", zap.Error(closeErr))
		}
		return nil, err
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// newServiceFromDB wires the service over an already opened handle and creates the schema.
func newServiceFromDB(db *sql.DB, createDummyUsers bool) (*Service, error) {
	service := &Service{db: db, ledger: NewLedgerService(db)}
	if err := service.initSchema(createDummyUsers); err != nil {
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}
	if err := service.ledger.InitSchema(); err != nil {
		return nil, fmt.Errorf("unable to initialize ledger schema: %w", err)
	}
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(createDummyUsers bool) error {
	schema := `
	-- Users table, one row per registered account
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'active',
		role TEXT NOT NULL DEFAULT 'user',
		last_purchase_approved_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);

	-- Admin flag records consulted by the admin gate
	CREATE TABLE IF NOT EXISTS admins (
		user_id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Deposit requests filed by users after paying into a mobile wallet
	CREATE TABLE IF NOT EXISTS deposit_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		method TEXT NOT NULL DEFAULT '',
		txid TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL,
		decided_at TIMESTAMP,
		decided_by TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_deposit_requests_status ON deposit_requests(status, created_at);
	CREATE INDEX IF NOT EXISTS idx_deposit_requests_user_id ON deposit_requests(user_id);

	-- Purchase requests for a top-up service
	CREATE TABLE IF NOT EXISTS purchase_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		service TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL,
		decided_at TIMESTAMP,
		decided_by TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_purchase_requests_status ON purchase_requests(status, created_at);
	CREATE INDEX IF NOT EXISTS idx_purchase_requests_user_id ON purchase_requests(user_id);

	-- Notifications, user_id is NULL for broadcasts
	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		broadcast BOOLEAN NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT 0,
		category TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id, created_at);

	-- Single row of payment numbers
	CREATE TABLE IF NOT EXISTS payment_settings (
		id TEXT PRIMARY KEY,
		bkash TEXT NOT NULL DEFAULT '',
		nagad TEXT NOT NULL DEFAULT '',
		rocket TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	if createDummyUsers {
		users := []struct {
			id    string
			name  string
			email string
		}{
			{uuid.New().String(), "Rahim Uddin", "rahim.uddin@example.com"},
			{uuid.New().String(), "Karim Hossain", "karim.hossain@example.com"},
			{uuid.New().String(), "Nusrat Jahan", "nusrat.jahan@example.com"},
		}

		for _, user := range users {
			_, err := s.db.Exec(queryInsertUser, user.id, user.name, user.email)
			if err != nil {
				zap.L().Error("Failed to insert dummy user", zap.String("name", user.name), zap.Error(err))
			} else {
				zap.L().Info("Dummy user created", zap.String("id", user.id), zap.String("name", user.name))
			}
		}
	} else {
		zap.L().Info("Skipping dummy user creation (CREATE_DUMMY_USERS=false)")
	}

	return nil
}

// Ledger convenience methods

func (s *Service) GetUserBalance(ctx context.Context, userId string) (decimal.Decimal, error) {
	return s.ledger.GetBalance(ctx, userId)
}

func (s *Service) GetLedgerHistory(ctx context.Context, userId string, limit, offset int) ([]models.LedgerEntry, error) {
	return s.ledger.GetLedgerHistory(ctx, userId, limit, offset)
}

func (s *Service) ReconcileUserBalance(ctx context.Context, userId string) error {
	return s.ledger.ReconcileBalance(ctx, userId)
}

// AdjustBalance applies an admin add or set and writes its notification in one transaction.
func (s *Service) AdjustBalance(ctx context.Context, params store.BalanceAdjustmentParams) (*models.LedgerEntry, error) {
	entryType := models.EntryTypeAdminAdd
	if params.Mode == store.AdjustSet {
		entryType = models.EntryTypeAdminSet
	}
	reference := params.Reference
	if reference == "" {
		reference = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := s.ledger.applyEntry(ctx, tx, entryParams{
		UserId:    params.UserId,
		Mode:      params.Mode,
		EntryType: entryType,
		Amount:    params.Amount,
		Reference: reference,
		ActorId:   params.ActorId,
	})
	if err != nil {
		return nil, err
	}

	if params.Notification != nil {
		n := *params.Notification
		n.UserId = params.UserId
		if err := insertNotification(ctx, tx, &n); err != nil {
			return nil, fmt.Errorf("failed to write balance notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance adjustment: %w", err)
	}

	zap.L().Info("Balance adjusted",
		zap.String("user_id", params.UserId),
		zap.String("mode", params.Mode.String()),
		zap.String("amount", params.Amount.String()),
		zap.String("old_balance", entry.BalanceBefore.String()),
		zap.String("new_balance", entry.BalanceAfter.String()),
		zap.String("actor_id", params.ActorId))

	return entry, nil
}
