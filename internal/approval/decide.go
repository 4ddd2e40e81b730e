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
	"fmt"
	"strings"
	"time"

	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"
)

// Action is an admin decision on a pending request
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ParseAction accepts "approve" or "reject" in any case.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	}
	return "", fmt.Errorf("%w: unknown action %q", store.ErrInvalidInput, s)
}

// Decide computes the full effect of applying action to req at now.
// Only pending requests can be decided. Approving a deposit credits its amount
// and notifies the owner; approving a purchase stamps the owner's entitlement and
// notifies them; rejecting changes the status only.
func Decide(req *models.Request, action Action, actorId string, now time.Time) (*store.Transition, error) {
	if req == nil {
		return nil, store.ErrNotFound
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: %s request %s is already %s", store.ErrInvalidState, req.Kind, req.Id, req.Status)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown request kind %q", store.ErrInvalidInput, req.Kind)
	}

	t := &store.Transition{
		Kind:      req.Kind,
		RequestId: req.Id,
		UserId:    req.UserId,
		DecidedAt: now,
		DecidedBy: actorId,
	}

	switch action {
	case ActionReject:
		t.ToStatus = models.RequestStatusRejected
		return t, nil
	case ActionApprove:
		t.ToStatus = models.RequestStatusApproved
	default:
		return nil, fmt.Errorf("%w: unknown action %q", store.ErrInvalidInput, action)
	}

	if strings.TrimSpace(req.UserId) == "" {
		return nil, fmt.Errorf("%w: %s request %s has no owner", store.ErrInvalidInput, req.Kind, req.Id)
	}

	switch req.Kind {
	case models.RequestKindDeposit:
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: deposit %s amount must be positive, got %s", store.ErrInvalidInput, req.Id, req.Amount.String())
		}
		t.Credit = &store.Credit{UserId: req.UserId, Amount: req.Amount}
		t.Notification = DepositApprovedNotification(req.UserId, req.Amount)
	case models.RequestKindPurchase:
		t.GrantEntitlement = true
		t.Notification = PurchaseApprovedNotification(req.UserId)
	}

	return t, nil
}
