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

	"cardmarket-revenue-go/internal/common"
	"cardmarket-revenue-go/internal/config"
	"cardmarket-revenue-go/internal/server"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	logger.Info("Starting marketplace revenue server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if cfg.Server.APIKey == "" {
		logger.Warn("SERVER_API_KEY is not set; the API will accept unauthenticated requests")
	}

	srv := server.New(cfg.Server, services.RevenueService)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}
