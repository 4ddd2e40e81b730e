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
	"errors"
	"fmt"
	"time"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// requestQueries is the statement set for one request table
type requestQueries struct {
	insert string
	get    string
	list   string
	decide string
	status string
}

var requestQueriesByKind = map[models.RequestKind]requestQueries{
	models.RequestKindDeposit: {
		insert: queryInsertDepositRequest,
		get:    queryGetDepositRequest,
		list:   queryListDepositRequestsByStatus,
		decide: queryDecideDepositRequest,
		status: queryDepositRequestStatus,
	},
	models.RequestKindPurchase: {
		insert: queryInsertPurchaseRequest,
		get:    queryGetPurchaseRequest,
		list:   queryListPurchaseRequestsByStatus,
		decide: queryDecidePurchaseRequest,
		status: queryPurchaseRequestStatus,
	},
}

func queriesFor(kind models.RequestKind) (requestQueries, error) {
	q, ok := requestQueriesByKind[kind]
	if !ok {
		return requestQueries{}, fmt.Errorf("%w: unknown request kind %q", store.ErrInvalidInput, kind)
	}
	return q, nil
}

// scanRequest reads one row; the two kind-specific columns sit after amount.
func scanRequest(kind models.RequestKind, row rowScanner) (*models.Request, error) {
	req := models.Request{Kind: kind}
	var amountStr, first, second string
	var decidedAt sql.NullTime
	var decidedBy sql.NullString

	err := row.Scan(&req.Id, &req.UserId, &amountStr, &first, &second,
		&req.Status, &req.CreatedAt, &decidedAt, &decidedBy)
	if err != nil {
		return nil, err
	}

	req.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	switch kind {
	case models.RequestKindDeposit:
		req.Method, req.TxId = first, second
	case models.RequestKindPurchase:
		req.Service, req.Phone = first, second
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		req.DecidedAt = &t
	}
	req.DecidedBy = decidedBy.String
	return &req, nil
}

func (s *Service) CreateRequest(ctx context.Context, params store.CreateRequestParams) (*models.Request, error) {
	q, err := queriesFor(params.Kind)
	if err != nil {
		return nil, err
	}

	first, second := params.Method, params.TxId
	if params.Kind == models.RequestKindPurchase {
		first, second = params.Service, params.Phone
	}

	requestId := uuid.New().String()
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, q.insert, requestId, params.UserId, params.Amount.String(), first, second, now); err != nil {
		zap.L().Error("Failed to insert request", zap.String("kind", string(params.Kind)), zap.Error(err))
		return nil, fmt.Errorf("unable to insert %s request: %w", params.Kind, err)
	}

	zap.L().Info("Request filed",
		zap.String("kind", string(params.Kind)),
		zap.String("request_id", requestId),
		zap.String("user_id", params.UserId),
		zap.String("amount", params.Amount.String()))

	return s.GetRequest(ctx, params.Kind, requestId)
}

func (s *Service) GetRequest(ctx context.Context, kind models.RequestKind, requestId string) (*models.Request, error) {
	q, err := queriesFor(kind)
	if err != nil {
		return nil, err
	}

	req, err := scanRequest(kind, s.db.QueryRowContext(ctx, q.get, requestId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s request %s", store.ErrNotFound, kind, requestId)
		}
		zap.L().Error("Failed to query request", zap.String("kind", string(kind)), zap.String("request_id", requestId), zap.Error(err))
		return nil, fmt.Errorf("unable to query %s request: %w", kind, err)
	}
	return req, nil
}

func (s *Service) ListRequestsByStatus(ctx context.Context, kind models.RequestKind, status string, limit int) ([]models.Request, error) {
	q, err := queriesFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q.list, status, limit)
	if err != nil {
		zap.L().Error("Failed to list requests", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("unable to list %s requests: %w", kind, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan %s request: %w", kind, err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during request row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	zap.L().Debug("Listed requests",
		zap.String("kind", string(kind)),
		zap.String("status", status),
		zap.Int("count", len(requests)))
	return requests, nil
}

// CommitTransition applies a decided transition in one SQL transaction. The status
// update only matches a pending row, so a request decided concurrently yields
// ErrInvalidState and nothing else is written.
func (s *Service) CommitTransition(ctx context.Context, t *store.Transition) (*models.LedgerEntry, error) {
	q, err := queriesFor(t.Kind)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, q.decide, t.ToStatus, t.DecidedAt, t.DecidedBy, t.RequestId)
	if err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var status string
		err := tx.QueryRowContext(ctx, q.status, t.RequestId).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s request %s", store.ErrNotFound, t.Kind, t.RequestId)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read request status: %w", err)
		}
		zap.L().Warn("Request already decided, skipping",
			zap.String("kind", string(t.Kind)),
			zap.String("request_id", t.RequestId),
			zap.String("status", status))
		return nil, fmt.Errorf("%w: %s request %s is %s", store.ErrInvalidState, t.Kind, t.RequestId, status)
	}

	var entry *models.LedgerEntry
	if t.Credit != nil {
		entry, err = s.ledger.applyEntry(ctx, tx, entryParams{
			UserId:    t.Credit.UserId,
			Mode:      store.AdjustAdd,
			EntryType: models.EntryTypeDepositApproved,
			Amount:    t.Credit.Amount,
			Reference: t.RequestId,
			ActorId:   t.DecidedBy,
		})
		if err != nil {
			return nil, err
		}
	}

	if t.GrantEntitlement {
		result, err := tx.ExecContext(ctx, queryGrantEntitlement, t.DecidedAt, t.DecidedAt, t.UserId)
		if err != nil {
			return nil, fmt.Errorf("failed to stamp purchase entitlement: %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return nil, fmt.Errorf("failed to check rows affected: %w", err)
		} else if n == 0 {
			return nil, fmt.Errorf("%w: user %s", store.ErrNotFound, t.UserId)
		}
	}

	if t.Notification != nil {
		n := *t.Notification
		if n.UserId == "" && !n.Broadcast {
			n.UserId = t.UserId
		}
		if err := insertNotification(ctx, tx, &n); err != nil {
			return nil, fmt.Errorf("failed to write %s notification: %w", t.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	fields := []zap.Field{
		zap.String("kind", string(t.Kind)),
		zap.String("request_id", t.RequestId),
		zap.String("user_id", t.UserId),
		zap.String("status", t.ToStatus),
		zap.String("decided_by", t.DecidedBy),
	}
	if entry != nil {
		fields = append(fields,
			zap.String("credited", entry.Amount.String()),
			zap.String("new_balance", entry.BalanceAfter.String()))
	}
	zap.L().Info("Request transition committed", fields...)

	return entry, nil
}
