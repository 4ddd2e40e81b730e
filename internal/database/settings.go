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

	"go.uber.org/zap"
)

// GetPaymentSettings returns the stored payment numbers, or empty settings when none were saved.
func (s *Service) GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	var updatedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, queryGetPaymentSettings).Scan(
		&settings.Bkash, &settings.Nagad, &settings.Rocket, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.PaymentSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query payment settings: %w", err)
	}
	settings.UpdatedAt = updatedAt.Time
	return &settings, nil
}

func (s *Service) SavePaymentSettings(ctx context.Context, settings models.PaymentSettings) error {
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, querySavePaymentSettings,
		settings.Bkash, settings.Nagad, settings.Rocket, settings.UpdatedAt)
	if err != nil {
		zap.L().Error("Failed to save payment settings", zap.Error(err))
		return fmt.Errorf("unable to save payment settings: %w", err)
	}

	zap.L().Info("Payment settings saved",
		zap.String("bkash", settings.Bkash),
		zap.String("nagad", settings.Nagad),
		zap.String("rocket", settings.Rocket))
	return nil
}
