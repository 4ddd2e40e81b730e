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

package approval

import (
	"context"
	"fmt"
	"strings"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"go.uber.org/zap"
)

// AdminLookup is the slice of the store the gate needs.
type AdminLookup interface {
	GetAdmin(ctx context.Context, userId string) (*models.Admin, error)
}

// Gate decides whether an actor may perform admin operations.
type Gate struct {
	admins AdminLookup
}

func NewGate(admins AdminLookup) *Gate {
	return &Gate{admins: admins}
}

// IsAdmin is true only for an active flag record whose role is "admin" in any case.
// A missing record is not an error.
func (g *Gate) IsAdmin(ctx context.Context, actorId string) (bool, error) {
	actorId = strings.TrimSpace(actorId)
	if actorId == "" {
		return false, nil
	}

	admin, err := g.admins.GetAdmin(ctx, actorId)
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	if admin == nil {
		return false, nil
	}
	return admin.Active && strings.EqualFold(admin.Role, "admin"), nil
}

// Require returns store.ErrUnauthorized unless actorId passes IsAdmin.
func (g *Gate) Require(ctx context.Context, actorId string) error {
	ok, err := g.IsAdmin(ctx, actorId)
	if err != nil {
		return err
	}
	if !ok {
		zap.L().Warn("Rejected non-admin actor", zap.String("actor_id", actorId))
		return fmt.Errorf("%w: %q is not an active admin", store.ErrUnauthorized, actorId)
	}
	return nil
}
