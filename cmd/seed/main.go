package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sprinta-dev/headhunter/backend/internal/config"
	"github.com/sprinta-dev/headhunter/backend/internal/repository"
	"github.com/sprinta-dev/headhunter/backend/internal/security"
	"github.com/sprinta-dev/headhunter/backend/internal/seed"
	"github.com/sprinta-dev/headhunter/backend/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert demo users, 3: insert full demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadSeedConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Error("failed to migrate database", "error", err)
		return
	}

	hasher := security.NewPasswordHasher(cfg.Password.BcryptCost)
	userService := service.NewUserService(repo, hasher)
	// 种子数据不会调用生成接口，因此不需要 chat client 和模型
	jobService := service.NewJobService(repo, nil, "")
	adService := service.NewAdService(repo)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("invalid number of users", slog.Int("n", n))
			return
		}
		cnt := seed.SeedRandomUsers(context.Background(), userService, n, cfg.Seed.User.Password, cfg.Seed.EmailDomain)
		slog.Info("users inserted", slog.Int("count", cnt))
	case 2:
		users, err := seed.SeedDemoUsers(context.Background(), userService, cfg.Seed.User.Password)
		if err != nil {
			slog.Error("failed to insert demo users", slog.String("error", err.Error()))
			return
		}
		slog.Info("demo users inserted", slog.Int("count", len(users)))
	case 3:
		if err := seed.SeedFullGraph(context.Background(), userService, jobService, adService, cfg.Seed.User.Password); err != nil {
			slog.Error("failed to insert full demo data", slog.String("error", err.Error()))
			return
		}
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
