package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot ID",
	Short: "Capture a PNG of the page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body := models.ScreenshotBody{}
		if full, _ := cmd.Flags().GetBool("full-page"); full {
			body.FullPage = models.Some(true)
		}

		resp, err := api.TakeScreenshot(commandContext(cmd), id, body)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		return writeBase64(cmd, output, resp.Data)
	},
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape ID",
	Short: "Scrape the page or one element of it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		body := models.ScrapePageBody{}
		if selector, _ := cmd.Flags().GetString("selector"); selector != "" {
			body.Selector = models.Some(selector)
		}
		if formats, _ := cmd.Flags().GetStringSlice("format"); len(formats) > 0 {
			fs := make([]models.ScrapeFormat, len(formats))
			for i, f := range formats {
				fs[i] = models.ScrapeFormat(f)
			}
			body.Format = models.Some(fs)
		}
		if cmd.Flags().Changed("html") {
			html, _ := cmd.Flags().GetBool("html")
			body.IncludeHTML = models.Some(html)
		}
		if shot, _ := cmd.Flags().GetBool("screenshot"); shot {
			body.Screenshot = models.Some(true)
		}

		resp, err := api.ScrapePage(commandContext(cmd), id, body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract ID DESCRIPTION",
	Short: "Extract information described in plain language",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body := models.ScrapeInformationBody{Description: args[1]}
		if detail, _ := cmd.Flags().GetString("detail"); detail != "" {
			body.LevelOfDetail = models.Some(models.LevelOfDetail(detail))
		}

		resp, err := api.ScrapeInformation(commandContext(cmd), id, body)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var pdfCmd = &cobra.Command{
	Use:   "pdf ID",
	Short: "Render the page to a PDF file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		body := models.GeneratePDFBody{}
		if landscape, _ := cmd.Flags().GetBool("landscape"); landscape {
			body.Landscape = models.Some(true)
		}

		resp, err := api.GeneratePDF(commandContext(cmd), id, body)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeBase64(cmd, output, resp.Data)
	},
}

// writeBase64 decodes data into path and reports where it went
func writeBase64(cmd *cobra.Command, path string, data models.Opt[string]) error {
	encoded, ok := data.Get()
	if !ok {
		return errors.New("response carries no data")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(raw), path)
	return nil
}

func init() {
	screenshotCmd.Flags().StringP("output", "o", "", "write the PNG to this file instead of printing JSON")
	screenshotCmd.Flags().Bool("full-page", false, "capture the whole page")

	scrapeCmd.Flags().String("selector", "", "scrape only the element matched by this selector")
	scrapeCmd.Flags().StringSlice("format", nil, "formats to return: html, text, json")
	scrapeCmd.Flags().Bool("html", true, "include raw HTML")
	scrapeCmd.Flags().Bool("screenshot", false, "include a screenshot")

	extractCmd.Flags().String("detail", "", "level of detail: brief, standard or full")

	pdfCmd.Flags().StringP("output", "o", "page.pdf", "file to write")
	pdfCmd.Flags().Bool("landscape", false, "landscape orientation")

	rootCmd.AddCommand(screenshotCmd, scrapeCmd, extractCmd, pdfCmd)
}
