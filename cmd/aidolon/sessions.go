package main

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/sessions"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a browser session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body := models.CreateSessionBody{}
		if cmd.Flags().Changed("visible") {
			visible, _ := cmd.Flags().GetBool("visible")
			body.Visible = models.Some(visible)
		}
		if cmd.Flags().Changed("session-timeout") {
			secs, _ := cmd.Flags().GetInt("session-timeout")
			body.Timeout = models.Some(secs)
		}

		resp, err := api.CreateSession(commandContext(cmd), body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var status models.Opt[models.StatusFilter]
		if s, _ := cmd.Flags().GetString("status"); s != "" {
			status = models.Some(models.StatusFilter(s))
		}

		resp, err := sessions.ListAll(commandContext(cmd), api, status)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status ID",
	Short: "Show the status of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resp, err := api.GetSessionStatus(commandContext(cmd), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close ID...",
	Short: "Close one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]uuid.UUID, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		parallel, _ := cmd.Flags().GetInt("parallel")
		resps, err := sessions.CloseEach(commandContext(cmd), api, ids, parallel)
		if err != nil {
			return err
		}
		if len(resps) == 1 {
			return printJSON(cmd.OutOrStdout(), resps[0])
		}
		return printJSON(cmd.OutOrStdout(), resps)
	},
}

var closeAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Close every active session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := sessions.CloseAll(commandContext(cmd), api)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var timeoutCmd = &cobra.Command{
	Use:   "timeout ID SECONDS",
	Short: "Change the inactivity timeout of a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		secs, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		resp, err := api.UpdateSessionTimeout(commandContext(cmd), id, models.UpdateTimeoutBody{Timeout: secs})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var contextCmd = &cobra.Command{
	Use:   "context ID",
	Short: "Show the browser context of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resp, err := api.GetBrowserContext(commandContext(cmd), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	createCmd.Flags().Bool("visible", true, "show the browser in the live view")
	createCmd.Flags().Int("session-timeout", 300, "inactivity timeout in seconds (60-21600)")
	listCmd.Flags().String("status", "", "filter by status: active, closed or all")
	closeCmd.Flags().Int("parallel", 4, "close at most this many sessions at once")

	rootCmd.AddCommand(createCmd, listCmd, statusCmd, closeCmd, closeAllCmd, timeoutCmd, contextCmd)
}
