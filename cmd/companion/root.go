package main

import (
	"context"
	"os"

	"github.com/sandevgo/companion/internal/config"
	"github.com/sandevgo/companion/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "companion",
	Short: "Companion — AI companion chat backend",
	Long:  `Companion serves the chat, personality and lead-capture API behind the GF.Chat web client.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
