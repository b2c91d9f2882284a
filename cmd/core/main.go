package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	grpc_adapter "github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/in/rest"
	memory_adapter "github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-rinha-ledger/internal/app/core/adapter/out/mysql"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-rinha-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-rinha-ledger/internal/config"
	"github.com/JoeShih716/go-rinha-ledger/internal/logger"
	"github.com/JoeShih716/go-rinha-ledger/internal/pkg/grpcserver"
	"github.com/JoeShih716/go-rinha-ledger/pkg/ledgerrpc"
	"github.com/JoeShih716/go-rinha-ledger/pkg/mysql"
)

func main() {
	// 1. 載入設定
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. 載入帳戶
	seeds, err := loadSeeds(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load accounts")
	}
	store, err := memory_adapter.NewAccountStore(seeds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build account store")
	}
	log.Info().Ints("account_ids", toInts(store.IDs())).Msg("accounts loaded")

	// 3. 初始化 UseCase
	coreUseCase := usecase.NewCoreUseCase(memory_adapter.NewMutexLedger(store), usecase.WithLogger(log))

	// 4. 啟動 HTTP / gRPC
	errCh := make(chan error, 2)

	httpServer := rest.NewServer(coreUseCase, log)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting http server")
		if err := httpServer.Listen(cfg.HTTP.Addr); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var rpcServer *grpcserver.Server
	if cfg.GRPC.Enabled {
		rpcServer = grpcserver.New(cfg.GRPC.Addr, log)
		ledgerrpc.RegisterLedgerServiceServer(rpcServer.Server, grpc_adapter.NewGrpcServer(coreUseCase))
		go func() {
			log.Info().Str("addr", cfg.GRPC.Addr).Msg("starting grpc server")
			if err := rpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	// Graceful Shutdown
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-errCh:
		log.Error().Err(err).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if rpcServer != nil {
		rpcServer.Stop()
	}
	log.Info().Msg("server exited")
}

// loadSeeds 依設定決定帳戶來源，MySQL 只在啟動時讀一次
func loadSeeds(ctx context.Context, cfg config.Config, log zerolog.Logger) ([]domain.AccountSeed, error) {
	var seeder usecase.AccountSeeder
	switch cfg.Seed.Source {
	case config.SeedSourceMySQL:
		dbClient, err := mysql.NewClient(ctx, cfg.MySQL, log)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		defer dbClient.Close()
		log.Info().Str("host", cfg.MySQL.Host).Msg("connected to mysql")
		seeder = mysql_adapter.NewAccountSeeder(dbClient)
	default:
		seeder = usecase.StaticSeeder(cfg.Seed.Seeds())
	}
	return seeder.LoadAccountSeeds(ctx)
}

func toInts(ids []uint8) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
