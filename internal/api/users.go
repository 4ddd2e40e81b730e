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
	"regexp"
	"strings"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", store.ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format: %s", store.ErrInvalidInput, email)
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", store.ErrInvalidInput)
	}
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", store.ErrInvalidInput)
	}
	return nil
}

// ResolveUser maps an email or a user id to the stored user. Keys containing
// "@" are treated as emails.
func (s *ConsoleService) ResolveUser(ctx context.Context, key string) (*models.User, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: user key is required", store.ErrInvalidInput)
	}

	if strings.Contains(key, "@") {
		return s.store.GetUserByEmail(ctx, key)
	}
	return s.store.GetUserById(ctx, key)
}

// RegisterUser creates an active user with a zero balance.
func (s *ConsoleService) RegisterUser(ctx context.Context, name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := validateEmail(email); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.store.CreateUser(ctx, uuid.New().String(), name, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

func (s *ConsoleService) ListUsers(ctx context.Context, actorId string, limit int) ([]models.UserRecord, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users, err := s.store.GetUsers(ctx, s.pageLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	records := make([]models.UserRecord, len(users))
	for i, u := range users {
		records[i] = models.UserRecord{
			Id:      u.Id,
			Name:    u.Name,
			Email:   u.Email,
			Status:  u.Status,
			Balance: u.Balance,
		}
	}
	return records, nil
}

// GrantAdmin writes the admin flag record for a user. It is an operator bootstrap
// step and is not gated; only the setup tool calls it.
func (s *ConsoleService) GrantAdmin(ctx context.Context, userKey, role string, active bool) (*models.User, error) {
	user, err := s.ResolveUser(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = "admin"
	}
	if err := s.store.UpsertAdmin(ctx, user.Id, role, active); err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}

	zap.L().Info("Admin flag granted",
		zap.String("user_id", user.Id),
		zap.String("email", user.Email),
		zap.String("role", role),
		zap.Bool("active", active))
	return user, nil
}
