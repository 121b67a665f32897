package main

import (
	"log"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Irdis/rsqlcmd/cmd/cli"
	"github.com/Irdis/rsqlcmd/internal/config"
	"github.com/Irdis/rsqlcmd/internal/logger"
)

func main() {
	cfg, err := config.Load("./config/config.toml")
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.Default().With("run_id", uuid.NewString()))

	cli.Rsqlcmd(cfg)
}
