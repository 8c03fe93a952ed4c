package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"meetlens/bootstrap"
	"meetlens/export"
	"meetlens/models"
	"meetlens/ui"
	"meetlens/utils"
)

// Output formats for analyze.
const (
	outputDashboard = "dashboard"
	outputMarkdown  = "markdown"
	outputJSON      = "json"
)

var errNoTranscript = errors.New("no transcript given: use --file, --text or pipe it on stdin")

type analyzeOptions struct {
	file         string
	text         string
	meetingType  string
	participants string
	output       string
	save         string
	width        int
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a transcript",
		Long: `Send a transcript to the analysis service and print the result.

The transcript comes from --file (.txt, .vtt or .srt), --text, or stdin,
in that order of preference.

Examples:
  # Analyze a subtitle file as a standup
  meetlens analyze --file standup.vtt --type standup

  # Analyze piped text and print Markdown
  pbpaste | meetlens analyze -o markdown

  # Keep the raw result for export, email or schedule
  meetlens analyze --text "Dana: ship Friday" --save result.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Transcript file (.txt, .vtt, .srt)")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Transcript text")
	cmd.Flags().StringVar(&opts.meetingType, "type", string(models.MeetingGeneral), "Meeting type: general, standup, planning, retrospective, client, brainstorm")
	cmd.Flags().StringVar(&opts.participants, "participants", "", "Comma-separated participant names")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputDashboard, "Output format: dashboard, markdown, json")
	cmd.Flags().StringVar(&opts.save, "save", "", "Also write the raw result JSON to this path")
	cmd.Flags().IntVar(&opts.width, "width", 100, "Dashboard width in columns")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	switch opts.output {
	case outputDashboard, outputMarkdown, outputJSON:
	default:
		return fmt.Errorf("invalid output format: %s", opts.output)
	}
	if opts.file != "" && opts.text != "" {
		return errors.New("use either --file or --text, not both")
	}

	app, err := root.buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	result, source, err := submitTranscript(cmd.Context(), cmd.InOrStdin(), app, opts)
	if err != nil {
		return err
	}
	app.Logger.Info().
		Str("source", source).
		Int("action_items", len(result.ActionItems)).
		Msg("analysis complete")

	if opts.save != "" {
		if err := saveResult(opts.save, result); err != nil {
			return err
		}
		app.Logger.Info().Str("path", opts.save).Msg("result saved")
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case outputMarkdown:
		fmt.Fprint(out, export.Markdown(result))
	case outputJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		printDashboard(ui.NewConsole(out, app.Presenter.Styles()), result, source, opts.width)
	}
	return nil
}

// submitTranscript picks the transcript source and sends it. A file wins
// over text, text over stdin.
func submitTranscript(ctx context.Context, stdin io.Reader, app *bootstrap.App, opts *analyzeOptions) (*models.AnalysisResult, string, error) {
	if opts.file != "" {
		path := utils.ExpandPath(opts.file)
		if !models.HasAllowedExtension(path) {
			return nil, "", fmt.Errorf("unsupported file type %q: use %s", filepath.Ext(path), strings.Join(models.AllowedExtensions, ", "))
		}
		if _, err := utils.ValidateFile(path); err != nil {
			return nil, "", err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening transcript: %w", err)
		}
		defer f.Close()

		result, err := app.Client.SubmitFile(ctx, filepath.Base(path), f)
		return result, filepath.Base(path), err
	}

	text := opts.text
	source := "text"
	if text == "" {
		piped, err := readPiped(stdin)
		if err != nil {
			return nil, "", err
		}
		text = piped
		source = "stdin"
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", errNoTranscript
	}

	req := models.AnalysisRequest{
		Text:         strings.TrimSpace(text),
		MeetingType:  models.MeetingType(strings.ToLower(strings.TrimSpace(opts.meetingType))),
		Participants: utils.ParseCommaSeparatedList(opts.participants),
	}
	if req.Participants == nil {
		req.Participants = []string{}
	}
	if !req.MeetingType.IsValid() {
		return nil, "", fmt.Errorf("invalid meeting type: %s", opts.meetingType)
	}
	if err := models.Validate(req); err != nil {
		return nil, "", err
	}

	result, err := app.Client.SubmitText(ctx, req)
	return result, source, err
}

// readPiped reads stdin unless it is an interactive terminal.
func readPiped(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func saveResult(path string, result *models.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	path = utils.ExpandPath(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDirectory(dir); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadResult reads a result saved by analyze --save.
func loadResult(path string) (*models.AnalysisResult, error) {
	if path == "" {
		return nil, errors.New("--input is required")
	}
	data, err := os.ReadFile(utils.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	result, err := models.ParseAnalysisResult(data)
	if err != nil {
		return nil, fmt.Errorf("parsing result %s: %w", path, err)
	}
	return result, nil
}

func printDashboard(console *ui.Console, result *models.AnalysisResult, source string, width int) {
	d := ui.BuildDashboard(result, nil)

	console.SectionHeader("Analysis")
	console.Field("Source", source)
	for _, card := range d.Cards {
		if card.ShowCount {
			console.Count(card.Title, card.Count)
		}
	}
	console.SectionFooter()
	fmt.Fprintln(console.Writer())

	cards := make([]ui.Card, 0, len(d.Cards))
	for _, card := range d.Cards {
		if card.Kind != ui.CardExport {
			cards = append(cards, card)
		}
	}
	fmt.Fprintln(console.Writer(), ui.RenderDashboard(ui.Dashboard{Cards: cards}, console.Styles(), width, ui.RenderOptions{}))
}
