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

	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

// GetAdmin returns the admin flag record for userId, or nil when none exists.
func (s *Service) GetAdmin(ctx context.Context, userId string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.QueryRowContext(ctx, queryGetAdmin, userId).Scan(
		&admin.UserId, &admin.Role, &admin.Active, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("Failed to query admin record", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query admin record: %w", err)
	}
	return &admin, nil
}

func (s *Service) UpsertAdmin(ctx context.Context, userId, role string, active bool) error {
	if _, err := s.db.ExecContext(ctx, queryUpsertAdmin, userId, role, active); err != nil {
		zap.L().Error("Failed to upsert admin record", zap.String("user_id", userId), zap.Error(err))
		return fmt.Errorf("unable to upsert admin record: %w", err)
	}

	zap.L().Info("Admin record saved",
		zap.String("user_id", userId),
		zap.String("role", role),
		zap.Bool("active", active))
	return nil
}
