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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Approve decides a pending request in favour of its owner.
func (s *ConsoleService) Approve(ctx context.Context, actorId string, kind models.RequestKind, requestId string) (*models.TransitionResult, error) {
	result, err := s.decide(ctx, actorId, kind, requestId, approval.ActionApprove)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	return result, nil
}

// Reject closes a pending request without touching balances or notifying anyone.
func (s *ConsoleService) Reject(ctx context.Context, actorId string, kind models.RequestKind, requestId string) (*models.TransitionResult, error) {
	result, err := s.decide(ctx, actorId, kind, requestId, approval.ActionReject)
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	return result, nil
}

func (s *ConsoleService) decide(ctx context.Context, actorId string, kind models.RequestKind, requestId string, action approval.Action) (*models.TransitionResult, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown request kind %q", store.ErrInvalidInput, kind)
	}
	requestId = strings.TrimSpace(requestId)
	if requestId == "" {
		return nil, fmt.Errorf("%w: request id is required", store.ErrInvalidInput)
	}

	req, err := s.store.GetRequest(ctx, kind, requestId)
	if err != nil {
		return nil, err
	}

	transition, err := approval.Decide(req, action, actorId, s.now().UTC())
	if err != nil {
		return nil, err
	}

	entry, err := s.store.CommitTransition(ctx, transition)
	if err != nil {
		return nil, err
	}
	transitionsTotal.WithLabelValues(string(kind), transition.ToStatus).Inc()

	result := &models.TransitionResult{
		RequestId: transition.RequestId,
		Kind:      transition.Kind,
		UserId:    transition.UserId,
		Status:    transition.ToStatus,
		Credited:  decimal.Zero,
		DecidedAt: transition.DecidedAt,
		DecidedBy: transition.DecidedBy,
	}
	if entry != nil {
		result.Credited = entry.Amount
		balance := entry.BalanceAfter
		result.NewBalance = &balance
		s.mirrorEntry(ctx, entry)
	}

	zap.L().Info("Request decided",
		zap.String("kind", string(kind)),
		zap.String("request_id", requestId),
		zap.String("action", string(action)),
		zap.String("status", transition.ToStatus),
		zap.String("actor_id", actorId))

	return result, nil
}

// ListPending returns pending requests of one kind. Non-positive limits use the
// default page size and larger ones are capped.
func (s *ConsoleService) ListPending(ctx context.Context, actorId string, kind models.RequestKind, limit int) ([]models.RequestRecord, error) {
	if err := s.gate.Require(ctx, actorId); err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("list pending: %w: unknown request kind %q", store.ErrInvalidInput, kind)
	}

	requests, err := s.store.ListRequestsByStatus(ctx, kind, models.RequestStatusPending, s.pageLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	records := make([]models.RequestRecord, len(requests))
	for i, req := range requests {
		records[i] = toRequestRecord(req)
	}
	return records, nil
}

// SubmitRequestParams carries a user-filed deposit or purchase.
type SubmitRequestParams struct {
	Kind      models.RequestKind
	UserKey   string
	RawAmount string
	Method    string
	TxId      string
	Service   string
	Phone     string
}

// SubmitRequest files a new pending request on behalf of a user.
func (s *ConsoleService) SubmitRequest(ctx context.Context, params SubmitRequestParams) (*models.RequestRecord, error) {
	if !params.Kind.Valid() {
		return nil, fmt.Errorf("submit: %w: unknown request kind %q", store.ErrInvalidInput, params.Kind)
	}
	amount, err := ParseAmount(params.RawAmount)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("submit: %w: amount must be positive", store.ErrInvalidInput)
	}

	create := store.CreateRequestParams{Kind: params.Kind, Amount: amount}
	switch params.Kind {
	case models.RequestKindDeposit:
		create.Method = strings.ToLower(strings.TrimSpace(params.Method))
		create.TxId = strings.TrimSpace(params.TxId)
		if create.TxId == "" {
			return nil, fmt.Errorf("submit: %w: payment reference is required", store.ErrInvalidInput)
		}
		if !s.catalog.HasMethod(create.Method) {
			return nil, fmt.Errorf("submit: %w: unknown payment method %q", store.ErrInvalidInput, create.Method)
		}
	case models.RequestKindPurchase:
		create.Service = strings.TrimSpace(params.Service)
		create.Phone = strings.TrimSpace(params.Phone)
		if !s.catalog.HasService(create.Service) {
			return nil, fmt.Errorf("submit: %w: unknown service %q", store.ErrInvalidInput, create.Service)
		}
	}

	user, err := s.ResolveUser(ctx, params.UserKey)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	create.UserId = user.Id

	req, err := s.store.CreateRequest(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	record := toRequestRecord(*req)
	return &record, nil
}

func toRequestRecord(req models.Request) models.RequestRecord {
	return models.RequestRecord{
		Id:        req.Id,
		Kind:      req.Kind,
		UserId:    req.UserId,
		Amount:    req.Amount,
		Method:    req.Method,
		TxId:      req.TxId,
		Service:   req.Service,
		Phone:     req.Phone,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
}
