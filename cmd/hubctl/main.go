package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentshub/internal/config"
	dbpostgres "studentshub/internal/database/postgres"

	"github.com/spf13/cobra"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

var rootCmd = &cobra.Command{
	Use:           "hubctl",
	Short:         "Operations CLI for the StudentsHub backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newCreateAdminCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*dbpostgres.Pool, config.DatabaseConfig, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, cfg, err
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("connect database: %w", err)
	}
	return db, cfg, nil
}
