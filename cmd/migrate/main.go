package main

import (
	"flag"
	"fmt"
	"os"

	"pvc-shop/internal/config"
	"pvc-shop/internal/database"
	"pvc-shop/internal/logger"

	"go.uber.org/zap"
)

const usage = `usage: migrate <command>

commands:
  up      apply all pending migrations
  status  print the state of every migration
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = database.RunMigrations(dbService.DB(), log)
	case "status":
		err = database.GetMigrationStatus(dbService.DB())
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}
