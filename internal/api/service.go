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
	"time"

	"topup-admin-go/internal/approval"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

var transitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topup_request_transitions_total",
		Help: "Committed request decisions by kind and resulting status",
	},
	[]string{"kind", "status"},
)

var balanceAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topup_balance_adjustments_total",
		Help: "Admin balance adjustments by mode",
	},
	[]string{"mode"},
)

// ConsoleService exposes every admin console operation. Mutating operations pass
// the admin gate before touching anything else.
type ConsoleService struct {
	store        store.ConsoleStore
	gate         *approval.Gate
	mirror       store.LedgerMirror
	catalog      *models.Catalog
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// Option configures a ConsoleService
type Option func(*ConsoleService)

// WithMirror copies every committed balance movement to m.
func WithMirror(m store.LedgerMirror) Option {
	return func(s *ConsoleService) { s.mirror = m }
}

// WithCatalog restricts submitted requests to the catalog's methods and services.
func WithCatalog(c *models.Catalog) Option {
	return func(s *ConsoleService) { s.catalog = c }
}

func WithPageLimits(defaultLimit, maxLimit int) Option {
	return func(s *ConsoleService) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithClock overrides the time source used for decision timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ConsoleService) { s.now = now }
}

func NewConsoleService(st store.ConsoleStore, opts ...Option) *ConsoleService {
	s := &ConsoleService{
		store:        st,
		gate:         approval.NewGate(st),
		defaultLimit: defaultPageLimit,
		maxLimit:     maxPageLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLimit > s.maxLimit {
		s.defaultLimit = s.maxLimit
	}
	return s
}

func (s *ConsoleService) Gate() *approval.Gate {
	return s.gate
}

func (s *ConsoleService) HealthCheck(ctx context.Context) error {
	if _, err := s.store.GetUsers(ctx, 1); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// pageLimit applies the default to non-positive limits and caps the rest.
func (s *ConsoleService) pageLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
