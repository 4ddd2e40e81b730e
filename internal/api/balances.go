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

package api

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"topup-admin-go/internal/approval"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var amountNoise = regexp.MustCompile(`[^\d.\-]`)

// ParseAmount keeps only digits, '.' and '-' before parsing, so "1,000" and "৳500" are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountNoise.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", store.ErrInvalidInput, raw)
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", store.ErrInvalidInput, raw)
	}
	return amount, nil
}

// AddBalance increments the user's balance by a possibly negative amount.
func (s *ConsoleService) AddBalance(ctx context.Context, actorId, userKey, rawAmount string) (*models.BalanceResult, error) {
	result, err := s.adjust(ctx, actorId, userKey, rawAmount, store.AdjustAdd)
	if err != nil {
		return nil, fmt.Errorf("add balance: %w", err)
	}
	return result, nil
}

// SetBalance overwrites the user's balance.
func (s *ConsoleService) SetBalance(ctx context.Context, actorId, userKey, rawAmount string) (*models.BalanceResult, error) {
	result, err := s.adjust(ctx, actorId, userKey, rawAmount, store.AdjustSet)
	if err != nil {
		return nil, fmt.Errorf("set balance: %w", err)
	}
	return result, nil
}

func (s *ConsoleService) adjust(ctx context.Context, actorId, userKey, rawAmount string, mode store.AdjustMode) (*models.BalanceResult, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, err
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	user, err := s.ResolveUser(ctx, userKey)
	if err != nil {
		return nil, err
	}

	notification := approval.BalanceAddedNotification(user.Id, amount)
	if mode == store.AdjustSet {
		notification = approval.BalanceSetNotification(user.Id, amount)
	}

	entry, err := s.store.AdjustBalance(ctx, store.BalanceAdjustmentParams{
		UserId:       user.Id,
		Mode:         mode,
		Amount:       amount,
		ActorId:      actorId,
		Notification: notification,
	})
	if err != nil {
		return nil, err
	}
	balanceAdjustmentsTotal.WithLabelValues(mode.String()).Inc()
	s.mirrorEntry(ctx, entry)

	return &models.BalanceResult{
		UserId:     user.Id,
		Email:      user.Email,
		Amount:     amount,
		NewBalance: entry.BalanceAfter,
	}, nil
}

// CheckBalance reads a user's balance. Nothing is written.
func (s *ConsoleService) CheckBalance(ctx context.Context, actorId, userKey string) (*models.BalanceResult, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, fmt.Errorf("check balance: %w", err)
	}
	user, err := s.ResolveUser(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("check balance: %w", err)
	}

	balance, err := s.store.GetUserBalance(ctx, user.Id)
	if err != nil {
		return nil, fmt.Errorf("check balance: %w", err)
	}
	return &models.BalanceResult{
		UserId:     user.Id,
		Email:      user.Email,
		NewBalance: balance,
	}, nil
}

// mirrorEntry copies a committed movement to the mirror ledger. The local commit
// already happened, so failures are logged and never returned.
func (s *ConsoleService) mirrorEntry(ctx context.Context, entry *models.LedgerEntry) {
	if s.mirror == nil || entry == nil {
		return
	}

	err := s.mirror.RecordMovement(ctx, store.MovementParams{
		Reference:  entry.Reference,
		UserId:     entry.UserId,
		EntryType:  entry.EntryType,
		Amount:     entry.Amount,
		ActorId:    entry.ActorId,
		OccurredAt: entry.CreatedAt,
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrDuplicateReference):
		zap.L().Debug("Movement already mirrored", zap.String("reference", entry.Reference))
	default:
		zap.L().Warn("Failed to mirror ledger movement",
			zap.String("reference", entry.Reference),
			zap.String("user_id", entry.UserId),
			zap.Error(err))
	}
}
