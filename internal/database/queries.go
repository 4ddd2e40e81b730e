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

const (
	// User queries
	querySelectUser = `
		SELECT u.id, u.name, u.email, u.status, u.role, COALESCE(b.balance, '0'),
		       u.last_purchase_approved_at, u.created_at, u.updated_at
		FROM users u
		LEFT JOIN account_balances b ON b.user_id = u.id`

	queryGetUsers = querySelectUser + `
		ORDER BY u.created_at
		LIMIT ?`

	queryGetUserById = querySelectUser + `
		WHERE u.id = ?`

	queryGetUserByEmail = querySelectUser + `
		WHERE u.email = ?
		LIMIT 1`

	queryInsertUser = `
		INSERT OR IGNORE INTO users (id, name, email, status, role) VALUES (?, ?, ?, 'active', 'user')`

	queryUserExists = `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`

	queryTouchUser = `
		UPDATE users SET updated_at = ? WHERE id = ?`

	queryGrantEntitlement = `
		UPDATE users SET last_purchase_approved_at = ?, updated_at = ? WHERE id = ?`

	// Admin queries
	queryGetAdmin = `
		SELECT user_id, role, active, created_at
		FROM admins
		WHERE user_id = ?`

	queryUpsertAdmin = `
		INSERT INTO admins (user_id, role, active) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role, active = excluded.active`

	// Deposit request queries
	queryInsertDepositRequest = `
		INSERT INTO deposit_requests (id, user_id, amount, method, txid, status, created_at)
		VALUES (?, ?, ?, ?, ?, 'pending', ?)`

	querySelectDepositRequest = `
		SELECT id, user_id, amount, method, txid, status, created_at, decided_at, decided_by
		FROM deposit_requests`

	queryGetDepositRequest = querySelectDepositRequest + `
		WHERE id = ?`

	queryListDepositRequestsByStatus = querySelectDepositRequest + `
		WHERE status = ?
		ORDER BY created_at
		LIMIT ?`

	queryDecideDepositRequest = `
		UPDATE deposit_requests
		SET status = ?, decided_at = ?, decided_by = ?
		WHERE id = ? AND status = 'pending'`

	queryDepositRequestStatus = `
		SELECT status FROM deposit_requests WHERE id = ?`

	// Purchase request queries
	queryInsertPurchaseRequest = `
		INSERT INTO purchase_requests (id, user_id, amount, service, phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, 'pending', ?)`

	querySelectPurchaseRequest = `
		SELECT id, user_id, amount, service, phone, status, created_at, decided_at, decided_by
		FROM purchase_requests`

	queryGetPurchaseRequest = querySelectPurchaseRequest + `
		WHERE id = ?`

	queryListPurchaseRequestsByStatus = querySelectPurchaseRequest + `
		WHERE status = ?
		ORDER BY created_at
		LIMIT ?`

	queryDecidePurchaseRequest = `
		UPDATE purchase_requests
		SET status = ?, decided_at = ?, decided_by = ?
		WHERE id = ? AND status = 'pending'`

	queryPurchaseRequestStatus = `
		SELECT status FROM purchase_requests WHERE id = ?`

	// Notification queries
	queryInsertNotification = `
		INSERT INTO notifications (id, user_id, broadcast, title, body, is_read, category, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`

	queryListNotifications = `
		SELECT id, user_id, broadcast, title, body, is_read, category, created_at
		FROM notifications
		WHERE user_id = ? OR broadcast = 1
		ORDER BY created_at DESC
		LIMIT ?`

	// Settings queries
	queryGetPaymentSettings = `
		SELECT bkash, nagad, rocket, updated_at
		FROM payment_settings
		WHERE id = 'payment'`

	querySavePaymentSettings = `
		INSERT INTO payment_settings (id, bkash, nagad, rocket, updated_at)
		VALUES ('payment', ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bkash = excluded.bkash,
			nagad = excluded.nagad,
			rocket = excluded.rocket,
			updated_at = excluded.updated_at`

	// Balance queries
	queryGetBalance = `
		SELECT balance
		FROM account_balances
		WHERE user_id = ?`

	queryGetLedgerAmounts = `
		SELECT amount
		FROM ledger_entries
		WHERE user_id = ?`

	// Ledger entry queries
	queryCheckDuplicateReference = `
		SELECT id FROM ledger_entries WHERE reference = ? LIMIT 1`

	queryGetAccountBalance = `
		SELECT id, balance, version
		FROM account_balances
		WHERE user_id = ?`

	queryInsertAccountBalance = `
		INSERT INTO account_balances (id, user_id, balance, version)
		VALUES (?, ?, ?, ?)`

	queryInsertLedgerEntry = `
		INSERT INTO ledger_entries (
			id, user_id, entry_type, amount, balance_before, balance_after,
			reference, actor_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryUpdateAccountBalance = `
		UPDATE account_balances
		SET balance = ?, last_entry_id = ?, version = version + 1, updated_at = ?
		WHERE user_id = ? AND version = ?`

	queryInsertJournalEntry = `
		INSERT INTO journal_entries (id, entry_id, account_type, account_id, debit_amount, credit_amount)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryGetLedgerHistory = `
		SELECT id, user_id, entry_type, amount, balance_before, balance_after,
		       reference, actor_id, created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
)
