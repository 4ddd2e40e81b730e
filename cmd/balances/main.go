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

package main

import (
	"context"
	"flag"
	"fmt"

	"topup-admin-go/internal/common"
	"topup-admin-go/internal/config"
	"topup-admin-go/internal/database"
	"topup-admin-go/internal/formance"
	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

type balanceStats struct {
	totalUsers      int
	nonZero         int
	reconcileFailed int
	mirrorMismatch  int
}

type reportOptions struct {
	history   int
	reconcile bool
	mirror    *formance.Service
}

// detailed reports whether any per-user section beyond the balance was requested
func (o reportOptions) detailed() bool {
	return o.history > 0 || o.reconcile || o.mirror != nil
}

func formatReference(ref string) string {
	if ref == "" {
		return "none"
	}
	if len(ref) > 8 {
		return ref[:8] + "..."
	}
	return ref
}

func printEntry(entry models.LedgerEntry, isLast bool) {
	fmt.Printf("%s %-16s %12s -> %12s (ref: %s, by: %s, %s)\n",
		common.BoxPrefix(isLast),
		entry.EntryType,
		entry.Amount.StringFixed(2),
		entry.BalanceAfter.StringFixed(2),
		formatReference(entry.Reference),
		formatReference(entry.ActorId),
		entry.CreatedAt.Format("2006-01-02 15:04:05"))
}

func printUserHeader(user common.UserInfo) {
	fmt.Printf("\n┌─ User: %s (%s) [%s]\n", user.Name, user.Email, user.Status)
	fmt.Printf("│  ID: %s\n", user.Id)
	fmt.Printf("│  Balance: %s\n", user.Balance.StringFixed(2))
}

func processUser(ctx context.Context, user common.UserInfo, dbService *database.Service, opts reportOptions, stats *balanceStats, logger *zap.Logger) error {
	printUserHeader(user)

	if opts.reconcile {
		if err := dbService.ReconcileUserBalance(ctx, user.Id); err != nil {
			stats.reconcileFailed++
			fmt.Printf("│  Reconcile: FAILED (%s)\n", err)
			logger.Warn("Balance does not match ledger",
				zap.String("user_id", user.Id),
				zap.Error(err))
		} else {
			fmt.Println("│  Reconcile: ok")
		}
	}

	if opts.mirror != nil {
		mirrored, err := opts.mirror.GetBalance(ctx, user.Id)
		if err != nil {
			return fmt.Errorf("failed to get mirror balance: %w", err)
		}
		if mirrored.Equal(user.Balance) {
			fmt.Printf("│  Mirror: %s (ok)\n", mirrored.StringFixed(2))
		} else {
			stats.mirrorMismatch++
			fmt.Printf("│  Mirror: %s (MISMATCH)\n", mirrored.StringFixed(2))
		}
	}

	if opts.history > 0 {
		entries, err := dbService.GetLedgerHistory(ctx, user.Id, opts.history, 0)
		if err != nil {
			return fmt.Errorf("failed to get ledger history: %w", err)
		}
		common.PrintBoxSeparator(78)
		for i, entry := range entries {
			printEntry(entry, i == len(entries)-1)
		}
	}

	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Filter by specific user email (optional)")
	limitFlag := flag.Int("limit", 200, "Maximum users to report")
	historyFlag := flag.Int("history", 0, "Show the last N ledger entries per user")
	reconcileFlag := flag.Bool("reconcile", false, "Check each balance against the sum of its ledger entries")
	mirrorFlag := flag.Bool("mirror", false, "Compare each balance with the Formance ledger mirror")
	flag.Parse()

	logger.Info("Starting balance query")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	opts := reportOptions{history: *historyFlag, reconcile: *reconcileFlag}

	var dbService *database.Service
	if *mirrorFlag {
		if !cfg.Formance.Enabled() {
			logger.Fatal("-mirror requires FORMANCE_STACK_URL")
		}
		services, err := common.InitializeServices(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize services", zap.Error(err))
		}
		defer services.Close()
		dbService = services.DbService
		opts.mirror = services.Mirror
	} else {
		logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
		dbService, err = common.InitializeDatabaseOnly(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer dbService.Close()
	}

	users, err := common.InitializeUsers(ctx, dbService, *emailFlag, *limitFlag, logger)
	if err != nil {
		logger.Fatal("Failed to initialize users", zap.Error(err))
	}

	common.PrintHeader("USER BALANCE REPORT", common.DefaultWidth)

	stats := balanceStats{}
	for i, user := range users {
		stats.totalUsers++
		if !user.Balance.IsZero() {
			stats.nonZero++
		}
		if !opts.detailed() {
			common.PrintUserLine(user, i == len(users)-1)
			continue
		}
		if err := processUser(ctx, user, dbService, opts, &stats, logger); err != nil {
			logger.Error("Failed to process user",
				zap.String("user_id", user.Id),
				zap.Error(err))
		}
	}

	summary := fmt.Sprintf("SUMMARY: %d users queried, %d with a non-zero balance", stats.totalUsers, stats.nonZero)
	if opts.reconcile {
		summary += fmt.Sprintf(", %d failed reconcile", stats.reconcileFailed)
	}
	if opts.mirror != nil {
		summary += fmt.Sprintf(", %d mirror mismatches", stats.mirrorMismatch)
	}
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance query completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("reconcile_failed", stats.reconcileFailed),
		zap.Int("mirror_mismatch", stats.mirrorMismatch))
}
