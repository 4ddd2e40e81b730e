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
	"fmt"
	"strings"

	"topup-admin-go/internal/approval"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"
)

// SendNotification writes a manual message to one user, or to everyone when
// recipientKey is empty.
func (s *ConsoleService) SendNotification(ctx context.Context, actorId, recipientKey, title, body string) (*models.Notification, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("notify: %w: message body is required", store.ErrInvalidInput)
	}

	userId := ""
	if strings.TrimSpace(recipientKey) != "" {
		user, err := s.ResolveUser(ctx, recipientKey)
		if err != nil {
			return nil, fmt.Errorf("notify: %w", err)
		}
		userId = user.Id
	}

	n := approval.ManualNotification(userId, strings.TrimSpace(title), body)
	if err := s.store.AppendNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	return n, nil
}
