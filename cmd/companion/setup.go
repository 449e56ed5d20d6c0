package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/companion/internal/config"
	"github.com/sandevgo/companion/internal/providers/llm"
	"github.com/sandevgo/companion/internal/service/chat"
	"github.com/sandevgo/companion/internal/service/memory"
	"github.com/sandevgo/companion/internal/service/persona"
	"github.com/sandevgo/companion/internal/storage/sqlite"
	"github.com/sandevgo/companion/internal/transport/httpapi"
	"github.com/sandevgo/companion/pkg/log"
	"github.com/sandevgo/companion/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Environment + configuration
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}
	appCfg := config.NewAppConfig(ctx)
	serverCfg := config.NewServerConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	messagesRepo := sqlite.NewMessagesRepo(db)
	factsRepo := sqlite.NewFactsRepo(db)
	personasRepo := sqlite.NewPersonasRepo(db)
	leadsRepo := sqlite.NewLeadsRepo(db)

	// 3. Model provider
	aiProvider, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Core services
	resolver := persona.NewResolver(personasRepo)
	extractor := memory.NewExtractor(aiProvider, factsRepo)
	chatSvc := chat.NewService(aiProvider, messagesRepo, factsRepo, resolver, extractor)

	// 5. HTTP transport
	handler := httpapi.NewHandler(chatSvc, resolver, leadsRepo)
	services = append(services, httpapi.NewServer(ctx, serverCfg, handler))

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
