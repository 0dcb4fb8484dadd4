package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/browser"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch ID",
	Short: "Stream live snapshots of a session until it closes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		updates, err := api.WatchLiveSession(ctx, id)
		if err != nil {
			return err
		}
		for snap := range updates {
			if err := printJSON(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run URL",
	Short: "Open a session, load URL, print its title and close the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		click, _ := cmd.Flags().GetString("click")

		return browser.With(ctx, api, browser.DefaultCreateBody(), func(s *browser.Session) error {
			nav, err := s.Navigate(ctx, args[0])
			if err != nil {
				return err
			}
			log.Info("page loaded",
				zap.String("session_id", s.ID().String()),
				zap.String("title", nav.Title.OrElse("")),
			)
			results := []any{nav}

			if click != "" {
				res, err := s.Click(ctx, click, string(models.WaitNavigation))
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			return printJSON(cmd.OutOrStdout(), results)
		}, browser.WithLogger(log))
	},
}

func init() {
	runCmd.Flags().String("click", "", "selector to click after the page loads")

	rootCmd.AddCommand(watchCmd, runCmd)
}
