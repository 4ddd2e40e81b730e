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

	"topup-admin-go/internal/models"
)

func (s *ConsoleService) LoadPaymentSettings(ctx context.Context, actorId string) (*models.PaymentSettings, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings, err := s.store.GetPaymentSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// SavePaymentSettings stores trimmed numbers; all three fields are written.
func (s *ConsoleService) SavePaymentSettings(ctx context.Context, actorId string, settings models.PaymentSettings) error {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	settings.Bkash = strings.TrimSpace(settings.Bkash)
	settings.Nagad = strings.TrimSpace(settings.Nagad)
	settings.Rocket = strings.TrimSpace(settings.Rocket)
	settings.UpdatedAt = s.now().UTC()

	if err := s.store.SavePaymentSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
