package main

import (
	"github.com/spf13/cobra"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

var navigateCmd = &cobra.Command{
	Use:   "navigate ID URL",
	Short: "Load a URL in the session's browser",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body := models.NavigateBody{URL: args[1]}
		if wait, _ := cmd.Flags().GetString("wait"); wait != "" {
			body.Wait = models.Some(models.ParseWaitStrategy(wait))
		}

		resp, err := api.Navigate(commandContext(cmd), id, body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var clickCmd = &cobra.Command{
	Use:   "click ID SELECTOR",
	Short: "Click an element",
	Long:  "Click an element matched by a CSS selector, an XPath or a plain description such as \"Sign in button\".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		wait, _ := cmd.Flags().GetString("wait")

		resp, err := api.Click(commandContext(cmd), id, models.ClickBody{
			Selector: args[1],
			Wait:     models.Some(models.ParseWaitStrategy(wait)),
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var typeCmd = &cobra.Command{
	Use:   "type ID SELECTOR TEXT",
	Short: "Type text into an element",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body := models.TypeTextBody{Selector: args[1], Text: args[2]}
		if cmd.Flags().Changed("delay") {
			delay, _ := cmd.Flags().GetInt("delay")
			body.Delay = models.Some(delay)
		}

		resp, err := api.TypeText(commandContext(cmd), id, body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var pressCmd = &cobra.Command{
	Use:   "press ID SELECTOR KEY",
	Short: "Press a key on an element",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		wait, _ := cmd.Flags().GetString("wait")

		resp, err := api.PressKey(commandContext(cmd), id, models.PressKeyBody{
			Selector: args[1],
			Key:      args[2],
			Wait:     models.Some(models.ParseWaitStrategy(wait)),
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var dragCmd = &cobra.Command{
	Use:   "drag ID SOURCE TARGET",
	Short: "Drag one element onto another",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		resp, err := api.DragAndDrop(commandContext(cmd), id, models.DragAndDropBody{
			SourceSelector: args[1],
			TargetSelector: args[2],
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	navigateCmd.Flags().String("wait", "", "wait strategy: auto, navigation, load, domcontentloaded, networkidle or none")
	clickCmd.Flags().String("wait", "auto", "wait strategy after the click")
	typeCmd.Flags().Int("delay", 0, "milliseconds between keystrokes")
	pressCmd.Flags().String("wait", "auto", "wait strategy after the key press")

	rootCmd.AddCommand(navigateCmd, clickCmd, typeCmd, pressCmd, dragCmd)
}
