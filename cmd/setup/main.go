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

	"go.uber.org/zap"
)

func grantAdmin(ctx context.Context, services *common.Services, userKey, role string, active bool) {
	user, err := services.Console.GrantAdmin(ctx, userKey, role, active)
	if err != nil {
		zap.L().Fatal("Failed to write admin flag",
			zap.String("user", userKey),
			zap.Error(err))
	}

	state := "ACTIVE"
	if !active {
		state = "INACTIVE"
	}
	common.PrintHeader("ADMIN FLAG UPDATED", common.DefaultWidth)
	fmt.Printf("User:   %s <%s>\n", user.Name, user.Email)
	fmt.Printf("ID:     %s\n", user.Id)
	fmt.Printf("State:  %s\n", state)
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	adminFlag := flag.String("admin", "", "Email or id of a user to flag as admin (optional)")
	roleFlag := flag.String("role", "admin", "Role to record on the admin flag")
	revokeFlag := flag.Bool("revoke", false, "Deactivate the admin flag instead of granting it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	// Opening the store creates the schema
	zap.L().Info("Setting up SQLite database", zap.String("path", cfg.Database.Path))
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *adminFlag != "" {
		grantAdmin(ctx, services, *adminFlag, *roleFlag, !*revokeFlag)
	}

	zap.L().Info("Initialization complete")
}
