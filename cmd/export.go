package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetlens/export"
	"meetlens/ui"
)

type exportOptions struct {
	input     string
	format    string
	clipboard bool
}

func newExportCommand(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved analysis result",
		Long: `Export a result written by 'meetlens analyze --save'.

markdown and summary print to stdout, or to the clipboard with --clipboard.
json and pdf write a dated file to the download directory.

Examples:
  # Copy the Markdown report
  meetlens export --input result.json --clipboard

  # Ask the service for a PDF
  meetlens export --input result.json --format pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Result JSON from analyze --save (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatMarkdown), "Format: markdown, summary, json, pdf")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "Copy markdown or summary to the clipboard instead of printing")

	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if !format.Local() {
		return fmt.Errorf("%s is not a file format: use 'meetlens %s' instead", format, shareCommand(format))
	}

	result, err := loadResult(opts.input)
	if err != nil {
		return err
	}

	app, err := root.buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	log := app.Logger.With().Str("format", format.String()).Logger()
	log.Info().Msg("export requested")

	console := ui.NewConsole(cmd.OutOrStdout(), app.Presenter.Styles())

	switch format {
	case export.FormatMarkdown, export.FormatSummary:
		text, done := export.Markdown(result), "Markdown copied to clipboard!"
		if format == export.FormatSummary {
			text, done = result.Summary, "Summary copied to clipboard!"
		}
		if !opts.clipboard {
			fmt.Fprintln(console.Writer(), text)
			return nil
		}
		if err := app.Clipboard.Copy(text); err != nil {
			log.Error().Err(err).Msg("clipboard copy failed")
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		console.Success(done)

	case export.FormatJSON:
		path, err := app.Writer.WriteJSON(result)
		if err != nil {
			return fmt.Errorf("exporting JSON: %w", err)
		}
		console.Success("JSON file downloaded successfully!")
		console.Field("Path", path)

	case export.FormatPDF:
		data, err := app.Client.ExportDocument(cmd.Context(), result)
		if err != nil {
			return fmt.Errorf("PDF generation failed: %w", err)
		}
		path, err := app.Writer.WriteBlob(data, "pdf")
		if err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		console.Success("PDF downloaded successfully!")
		console.Field("Path", path)
	}

	log.Info().Msg("export complete")
	return nil
}

func shareCommand(f export.Format) string {
	if f == export.FormatCalendar {
		return "schedule"
	}
	return "email"
}
