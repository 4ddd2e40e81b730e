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
	"time"

	"topup-admin-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertNotification fills Id and CreatedAt when unset and writes n through ex,
// which may be the database or an open transaction.
func insertNotification(ctx context.Context, ex execer, n *models.Notification) error {
	if n.Id == "" {
		n.Id = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	var userId sql.NullString
	if !n.Broadcast {
		userId = sql.NullString{String: n.UserId, Valid: n.UserId != ""}
	}

	_, err := ex.ExecContext(ctx, queryInsertNotification,
		n.Id, userId, n.Broadcast, n.Title, n.Body, n.Category, n.CreatedAt)
	return err
}

func (s *Service) AppendNotification(ctx context.Context, n *models.Notification) error {
	if err := insertNotification(ctx, s.db, n); err != nil {
		zap.L().Error("Failed to insert notification", zap.String("user_id", n.UserId), zap.Error(err))
		return fmt.Errorf("unable to insert notification: %w", err)
	}

	zap.L().Info("Notification written",
		zap.String("id", n.Id),
		zap.String("user_id", n.UserId),
		zap.Bool("broadcast", n.Broadcast),
		zap.String("category", n.Category))
	return nil
}

// ListNotifications returns the user's own notifications plus broadcasts, newest first.
func (s *Service) ListNotifications(ctx context.Context, userId string, limit int) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, queryListNotifications, userId, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to query notifications: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var owner sql.NullString
		if err := rows.Scan(&n.Id, &owner, &n.Broadcast, &n.Title, &n.Body, &n.Read, &n.Category, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan notification: %w", err)
		}
		n.UserId = owner.String
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}
