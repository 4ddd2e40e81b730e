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
	"os"

	"topup-admin-go/internal/api"
	"topup-admin-go/internal/approval"
	"topup-admin-go/internal/common"
	"topup-admin-go/internal/config"
	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

const usage = `usage: requests <command> [flags]

commands:
  list     list pending requests
  approve  approve a pending request (-id)
  reject   reject a pending request (-id)
  file     file a new request on behalf of a user
`

func parseKind(s string) models.RequestKind {
	kind := models.RequestKind(s)
	if !kind.Valid() {
		zap.L().Fatal("Unknown request kind, expected deposit or purchase", zap.String("kind", s))
	}
	return kind
}

func listPending(ctx context.Context, console *api.ConsoleService, actorId string, kinds []models.RequestKind, limit int) {
	common.PrintHeader("PENDING REQUESTS", common.WideWidth)
	total := 0
	for _, kind := range kinds {
		records, err := console.ListPending(ctx, actorId, kind, limit)
		if err != nil {
			zap.L().Fatal("Failed to list pending requests",
				zap.String("kind", string(kind)),
				zap.Error(err))
		}
		fmt.Printf("\n┌─ %s (%d)\n", kind, len(records))
		for i, r := range records {
			common.PrintRequestLine(r, i == len(records)-1)
		}
		total += len(records)
	}
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d pending", total), common.WideWidth)
}

func decide(ctx context.Context, console *api.ConsoleService, actorId string, kind models.RequestKind, requestId string, action approval.Action) {
	var result *models.TransitionResult
	var err error
	if action == approval.ActionApprove {
		result, err = console.Approve(ctx, actorId, kind, requestId)
	} else {
		result, err = console.Reject(ctx, actorId, kind, requestId)
	}
	if err != nil {
		zap.L().Fatal("Decision failed",
			zap.String("request_id", requestId),
			zap.String("action", string(action)),
			zap.Error(err))
	}

	common.PrintHeader("REQUEST DECIDED", common.DefaultWidth)
	fmt.Printf("Request:  %s %s\n", result.Kind, result.RequestId)
	fmt.Printf("User:     %s\n", result.UserId)
	fmt.Printf("Status:   %s\n", result.Status)
	if !result.Credited.IsZero() {
		fmt.Printf("Credited: %s\n", result.Credited.StringFixed(2))
	}
	if result.NewBalance != nil {
		fmt.Printf("Balance:  %s\n", result.NewBalance.StringFixed(2))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	kindFlag := fs.String("kind", "", "deposit or purchase (list defaults to both)")
	idFlag := fs.String("id", "", "Request id")
	limitFlag := fs.Int("limit", 0, "Maximum requests to list")
	actorFlag := fs.String("actor", "", "Operator email or id (defaults to CONSOLE_OPERATOR)")
	userFlag := fs.String("user", "", "User email or id (file)")
	amountFlag := fs.String("amount", "", "Deposit amount or purchase cost (file)")
	methodFlag := fs.String("method", "", "Payment method (file deposit)")
	txidFlag := fs.String("txid", "", "Payment transaction id (file deposit)")
	serviceFlag := fs.String("service", "", "Top-up service (file purchase)")
	phoneFlag := fs.String("phone", "", "Phone number to top up (file purchase)")
	if err := fs.Parse(os.Args[2:]); err != nil {
		zap.L().Fatal("Failed to parse flags", zap.Error(err))
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

	switch command {
	case "list", "approve", "reject":
		actorId, err := common.ResolveOperator(ctx, services.Console, cfg, *actorFlag)
		if err != nil {
			zap.L().Fatal("Failed to resolve operator", zap.Error(err))
		}
		if command == "list" {
			kinds := []models.RequestKind{models.RequestKindDeposit, models.RequestKindPurchase}
			if *kindFlag != "" {
				kinds = []models.RequestKind{parseKind(*kindFlag)}
			}
			listPending(ctx, services.Console, actorId, kinds, *limitFlag)
			return
		}
		if *kindFlag == "" || *idFlag == "" {
			zap.L().Fatal("Both flags are required: --kind and --id")
		}
		action, err := approval.ParseAction(command)
		if err != nil {
			zap.L().Fatal("Unknown action", zap.Error(err))
		}
		decide(ctx, services.Console, actorId, parseKind(*kindFlag), *idFlag, action)

	case "file":
		if *kindFlag == "" || *userFlag == "" {
			zap.L().Fatal("Both flags are required: --kind and --user")
		}
		record, err := services.Console.SubmitRequest(ctx, api.SubmitRequestParams{
			Kind:      parseKind(*kindFlag),
			UserKey:   *userFlag,
			RawAmount: *amountFlag,
			Method:    *methodFlag,
			TxId:      *txidFlag,
			Service:   *serviceFlag,
			Phone:     *phoneFlag,
		})
		if err != nil {
			zap.L().Fatal("Failed to file request", zap.Error(err))
		}
		common.PrintHeader("REQUEST FILED", common.WideWidth)
		common.PrintRequestLine(*record, true)
		common.PrintSeparator("=", common.WideWidth)

	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}
