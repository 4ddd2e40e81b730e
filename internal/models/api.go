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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResult is returned by balance checks and adjustments
type BalanceResult struct {
	UserId     string          `json:"user_id"`
	Email      string          `json:"email,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// TransitionResult describes a committed request decision
type TransitionResult struct {
	RequestId  string           `json:"request_id"`
	Kind       RequestKind      `json:"kind"`
	UserId     string           `json:"user_id"`
	Status     string           `json:"status"`
	Credited   decimal.Decimal  `json:"credited"`
	NewBalance *decimal.Decimal `json:"new_balance,omitempty"`
	DecidedAt  time.Time        `json:"decided_at"`
	DecidedBy  string           `json:"decided_by"`
}

// RequestRecord is the operator-facing view of a request
type RequestRecord struct {
	Id        string          `json:"id"`
	Kind      RequestKind     `json:"kind"`
	UserId    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	TxId      string          `json:"txid,omitempty"`
	Service   string          `json:"service,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserRecord is the operator-facing view of a user
type UserRecord struct {
	Id      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Status  string          `json:"status"`
	Balance decimal.Decimal `json:"balance"`
}
