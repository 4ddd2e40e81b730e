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
	"strings"

	"topup-admin-go/internal/common"
	"topup-admin-go/internal/config"
	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	userFlag := flag.String("user", "", "Email or id of the user to adjust (required)")
	amountFlag := flag.String("amount", "", "Amount to add, or the new balance with -mode set (required)")
	modeFlag := flag.String("mode", "add", "add or set")
	actorFlag := flag.String("actor", "", "Operator email or id (defaults to CONSOLE_OPERATOR)")
	flag.Parse()

	if *userFlag == "" || *amountFlag == "" {
		zap.L().Fatal("Both flags are required: --user and --amount")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	actorId, err := common.ResolveOperator(ctx, services.Console, cfg, *actorFlag)
	if err != nil {
		zap.L().Fatal("Failed to resolve operator", zap.Error(err))
	}

	var result *models.BalanceResult
	switch strings.ToLower(*modeFlag) {
	case "add":
		result, err = services.Console.AddBalance(ctx, actorId, *userFlag, *amountFlag)
	case "set":
		result, err = services.Console.SetBalance(ctx, actorId, *userFlag, *amountFlag)
	default:
		zap.L().Fatal("Unknown mode", zap.String("mode", *modeFlag))
	}
	if err != nil {
		zap.L().Fatal("Balance adjustment failed", zap.Error(err))
	}

	common.PrintHeader("BALANCE UPDATED", common.DefaultWidth)
	fmt.Printf("User:        %s (%s)\n", result.Email, result.UserId)
	fmt.Printf("Mode:        %s\n", strings.ToLower(*modeFlag))
	fmt.Printf("Change:      %s\n", result.Amount.StringFixed(2))
	fmt.Printf("New balance: %s\n", result.NewBalance.StringFixed(2))
	common.PrintSeparator("=", common.DefaultWidth)
}
