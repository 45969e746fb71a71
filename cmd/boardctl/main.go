package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskboard/internal/syncclient"
)

var Version = "dev"

type globalOptions struct {
	baseURL  string
	token    string
	language string
	verbose  bool
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "Poll a task board for changes and notifications",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", envOr("BOARD_URL", "http://localhost:8080"), "Board API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("BOARD_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().StringVar(&opts.language, "lang", "en", "Preferred language for API errors")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every poll")

	rootCmd.AddCommand(watchCmd(opts))
	rootCmd.AddCommand(readAllCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *globalOptions) client() (*syncclient.Client, error) {
	if o.token == "" {
		return nil, fmt.Errorf("a token is required (--token or BOARD_TOKEN)")
	}
	return syncclient.NewClient(o.baseURL, o.token, syncclient.WithLanguage(o.language)), nil
}

func (o *globalOptions) logger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !o.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func formatInterval(d time.Duration) string {
	if d <= 0 {
		return "server default"
	}
	return d.String()
}
