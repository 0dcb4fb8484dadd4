package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/config"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/logger"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/client"
)

var (
	configPath string
	baseURL    string
	apiKey     string
	timeout    time.Duration

	api *client.Client
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "aidolon",
	Short:        "Drive remote browsers through the Aidolon API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log, err = logger.New(cfg.Logger.Env, cfg.Logger.Level)
		if err != nil {
			return err
		}

		url := cfg.API.URL
		if baseURL != "" {
			url = baseURL
		}
		key := cfg.API.Key
		if apiKey != "" {
			key = apiKey
		}

		opts := []client.Option{client.WithLogger(log), client.WithTimeout(timeout)}
		if key != "" {
			opts = append(opts, client.WithToken(key))
		}
		api = client.New(url, opts...)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides config and AIDOLON_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides config and AIDOLON_API_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "per-request timeout")
}

// printJSON writes v indented, one document per call
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", s, err)
	}
	return id, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
