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

// User statuses
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// RequestKind selects which request table an operation targets
type RequestKind string

const (
	RequestKindDeposit  RequestKind = "deposit"
	RequestKindPurchase RequestKind = "purchase"
)

// Valid reports whether k names a known request table
func (k RequestKind) Valid() bool {
	return k == RequestKindDeposit || k == RequestKindPurchase
}

// Request statuses. Approved and rejected are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Notification categories
const (
	CategoryBalance  = "balance"
	CategoryDeposit  = "deposit"
	CategoryPurchase = "purchase"
	CategoryManual   = "manual"
)

// Ledger entry types
const (
	EntryTypeAdminAdd        = "admin_add"
	EntryTypeAdminSet        = "admin_set"
	EntryTypeDepositApproved = "deposit_approved"
)

// User represents a registered console user together with its current balance
type User struct {
	Id                     string          `db:"id"`
	Name                   string          `db:"name"`
	Email                  string          `db:"email"`
	Status                 string          `db:"status"`
	Role                   string          `db:"role"`
	Balance                decimal.Decimal `db:"balance"`
	LastPurchaseApprovedAt *time.Time      `db:"last_purchase_approved_at"`
	CreatedAt              time.Time       `db:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at"`
}

// Admin is the flag record consulted by the admin gate
type Admin struct {
	UserId    string    `db:"user_id"`
	Role      string    `db:"role"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// Request is a deposit or purchase request awaiting (or past) an admin decision.
// Amount holds the deposit amount or the purchase cost.
type Request struct {
	Id        string          `db:"id"`
	Kind      RequestKind     `db:"-"`
	UserId    string          `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	TxId      string          `db:"txid"`
	Service   string          `db:"service"`
	Phone     string          `db:"phone"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	DecidedAt *time.Time      `db:"decided_at"`
	DecidedBy string          `db:"decided_by"`
}

// IsPending reports whether the request can still be decided
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Notification is a message addressed to one user or broadcast to all
type Notification struct {
	Id        string    `db:"id"`
	UserId    string    `db:"user_id"`
	Broadcast bool      `db:"broadcast"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Read      bool      `db:"is_read"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

// PaymentSettings holds the mobile wallet numbers users pay deposits into
type PaymentSettings struct {
	Bkash     string    `db:"bkash"`
	Nagad     string    `db:"nagad"`
	Rocket    string    `db:"rocket"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AccountBalance represents current balance state (hot data)
type AccountBalance struct {
	Id          string          `db:"id"`
	UserId      string          `db:"user_id"`
	Balance     decimal.Decimal `db:"balance"`
	LastEntryId string          `db:"last_entry_id"`
	Version     int64           `db:"version"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// LedgerEntry represents immutable balance history (cold data)
type LedgerEntry struct {
	Id            string          `db:"id"`
	UserId        string          `db:"user_id"`
	EntryType     string          `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Reference     string          `db:"reference"`
	ActorId       string          `db:"actor_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
