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

func printSettings(settings *models.PaymentSettings) {
	common.PrintHeader("PAYMENT SETTINGS", common.DefaultWidth)
	fmt.Printf("bKash:   %s\n", settings.Bkash)
	fmt.Printf("Nagad:   %s\n", settings.Nagad)
	fmt.Printf("Rocket:  %s\n", settings.Rocket)
	if !settings.UpdatedAt.IsZero() {
		fmt.Printf("Updated: %s\n", settings.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	setFlag := flag.Bool("set", false, "Save the numbers given by -bkash, -nagad and -rocket")
	bkashFlag := flag.String("bkash", "", "bKash receiving number")
	nagadFlag := flag.String("nagad", "", "Nagad receiving number")
	rocketFlag := flag.String("rocket", "", "Rocket receiving number")
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

	actorId, err := common.ResolveOperator(ctx, services.Console, cfg, *actorFlag)
	if err != nil {
		zap.L().Fatal("Failed to resolve operator", zap.Error(err))
	}

	if *setFlag {
		err := services.Console.SavePaymentSettings(ctx, actorId, models.PaymentSettings{
			Bkash:  *bkashFlag,
			Nagad:  *nagadFlag,
			Rocket: *rocketFlag,
		})
		if err != nil {
			zap.L().Fatal("Failed to save payment settings", zap.Error(err))
		}
	}

	settings, err := services.Console.LoadPaymentSettings(ctx, actorId)
	if err != nil {
		zap.L().Fatal("Failed to load payment settings", zap.Error(err))
	}
	printSettings(settings)
}
