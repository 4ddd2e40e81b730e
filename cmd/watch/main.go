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
	"os"
	"os/signal"
	"syscall"

	"topup-admin-go/internal/common"
	"topup-admin-go/internal/config"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/watcher"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	zap.L().Info("Starting pending request watcher")

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	w := watcher.NewPendingWatcher(watcher.Config{
		Source:          dbService,
		PollingInterval: cfg.Watcher.PollingInterval,
		CleanupInterval: cfg.Watcher.CleanupInterval,
		SeenRetention:   cfg.Watcher.SeenRetention,
		BatchSize:       cfg.Console.MaxPageLimit,
		OnPending: func(r models.Request) {
			zap.L().Info("New pending request",
				zap.String("kind", string(r.Kind)),
				zap.String("request_id", r.Id),
				zap.String("user_id", r.UserId),
				zap.String("amount", r.Amount.String()))
		},
	})
	w.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	zap.L().Info("Watcher is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		zap.L().Info("Received shutdown signal")
	case <-w.Done():
		zap.L().Warn("Watcher exited")
	}

	w.Stop()
	zap.L().Info("Watcher stopped")
}
