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
	"topup-admin-go/internal/models"

	"go.uber.org/zap"
)

func printNotification(n models.Notification, isLast bool) {
	audience := "direct"
	if n.Broadcast {
		audience = "broadcast"
	}
	read := ""
	if n.Read {
		read = " (read)"
	}
	fmt.Printf("%s[%s] %s: %s%s\n", common.BoxPrefix(isLast), n.Category, n.Title, n.Body, read)
	fmt.Printf("%s  %s  %s\n", common.BoxDetailPrefix(isLast), audience, n.CreatedAt.Format("2006-01-02 15:04:05"))
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	toFlag := flag.String("to", "", "Recipient email or id (empty broadcasts to everyone)")
	titleFlag := flag.String("title", "", "Notification title")
	bodyFlag := flag.String("body", "", "Notification body")
	listFlag := flag.String("list", "", "List notifications visible to this user instead of sending")
	limitFlag := flag.Int("limit", 20, "Maximum notifications to list")
	actorFlag := flag.String("actor", "", "Operator email or id (defaults to CONSOLE_OPERATOR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *listFlag != "" {
		user, err := services.Console.ResolveUser(ctx, *listFlag)
		if err != nil {
			zap.L().Fatal("Failed to resolve user", zap.Error(err))
		}
		notifications, err := services.DbService.ListNotifications(ctx, user.Id, *limitFlag)
		if err != nil {
			zap.L().Fatal("Failed to list notifications", zap.Error(err))
		}
		common.PrintHeader(fmt.Sprintf("NOTIFICATIONS FOR %s", user.Email), common.DefaultWidth)
		for i, n := range notifications {
			printNotification(n, i == len(notifications)-1)
		}
		common.PrintFooter(fmt.Sprintf("SUMMARY: %d notifications", len(notifications)), common.DefaultWidth)
		return
	}

	actorId, err := common.ResolveOperator(ctx, services.Console, cfg, *actorFlag)
	if err != nil {
		zap.L().Fatal("Failed to resolve operator", zap.Error(err))
	}

	n, err := services.Console.SendNotification(ctx, actorId, *toFlag, *titleFlag, *bodyFlag)
	if err != nil {
		zap.L().Fatal("Failed to send notification", zap.Error(err))
	}

	common.PrintHeader("NOTIFICATION SENT", common.DefaultWidth)
	printNotification(*n, true)
	common.PrintSeparator("=", common.DefaultWidth)
}
