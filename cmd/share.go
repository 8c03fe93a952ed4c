package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"meetlens/models"
	"meetlens/ui"
	"meetlens/utils"
)

type emailOptions struct {
	input      string
	to         string
	subject    string
	includePDF bool
}

func newEmailCommand(root *rootOptions) *cobra.Command {
	opts := &emailOptions{}

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Email a saved analysis result",
		Long: `Ask the analysis service to email a result written by 'meetlens analyze --save'.
The recipient is prompted for when --to is not given.

Examples:
  meetlens email --input result.json --to dana@example.com --pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmail(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Result JSON from analyze --save (required)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&opts.subject, "subject", models.DefaultEmailSubject, "Subject line")
	cmd.Flags().BoolVar(&opts.includePDF, "pdf", false, "Attach the PDF report")

	return cmd
}

func runEmail(cmd *cobra.Command, root *rootOptions, opts *emailOptions) error {
	result, err := loadResult(opts.input)
	if err != nil {
		return err
	}

	app, err := root.buildApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	console := ui.NewConsole(cmd.OutOrStdout(), app.Presenter.Styles())

	to := strings.TrimSpace(opts.to)
	if to == "" {
		to, err = console.Prompt(bufio.NewReader(cmd.InOrStdin()), "Recipient email", "")
		if err != nil {
			return err
		}
	}

	req := models.EmailRequest{
		RecipientEmail: to,
		Subject:        strings.TrimSpace(opts.subject),
		MeetingData:    result,
		IncludePDF:     opts.includePDF,
	}
	if err := models.Validate(req); err != nil {
		return errors.New("recipient and subject are required")
	}

	if _, err := app.Client.SendEmail(cmd.Context(), req); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	app.Logger.Info().Bool("include_pdf", req.IncludePDF).Msg("email sent")

	console.SectionHeader("Email")
	console.Field("To", req.RecipientEmail)
	console.Field("Subject", req.Subject)
	console.Field("PDF attached", fmt.Sprintf("%t", req.IncludePDF))
	console.SectionFooter()
	console.Success("Email sent successfully!")
	return nil
}

type scheduleOptions struct {
	input     string
	title     string
	at        string
	duration  string
	attendees string
}

func newScheduleCommand(root *rootOptions) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Create a follow-up calendar event",
		Long: `Ask the analysis service to create a follow-up event for a result written
by 'meetlens analyze --save'. --at is local time (YYYY-MM-DD HH:MM) or RFC 3339.

Examples:
  meetlens schedule --input result.json --title "Budget follow-up" \
    --at "2025-01-10 15:00" --duration 30 --attendees dana@example.com,lee@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, root, opts, time.Local)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Result JSON from analyze --save (required)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Event title")
	cmd.Flags().StringVar(&opts.at, "at", "", "Start time, e.g. 2025-01-10 15:00")
	cmd.Flags().StringVar(&opts.duration, "duration", fmt.Sprintf("%d", models.DefaultEventDuration), "Length in minutes")
	cmd.Flags().StringVar(&opts.attendees, "attendees", "", "Comma-separated attendee emails")

	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootOptions, opts *scheduleOptions, loc *time.Location) error {
	title := strings.TrimSpace(opts.title)
	if title == "" || strings.TrimSpace(opts.at) == "" {
		return errors.New("--title and --at are required")
	}
	start, err := models.ParseEventTime(opts.at, loc)
	if err != nil {
		return fmt.Errorf("invalid --at, use YYYY-MM-DD HH:MM: %w", err)
	}
	duration, err := models.ParseDuration(opts.duration)
	if err != nil {
		return fmt.Errorf("--duration must be a whole number of minutes greater than zero: %w", err)
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

	attendees := utils.ParseCommaSeparatedList(opts.attendees)
	if attendees == nil {
		attendees = []string{}
	}
	req := models.EventRequest{
		Title:           title,
		Description:     models.EventDescription(result),
		StartTime:       models.ISOTimestamp(start),
		DurationMinutes: duration,
		Attendees:       attendees,
		MeetingData:     result,
	}
	if err := models.Validate(req); err != nil {
		return err
	}

	if _, err := app.Client.ScheduleEvent(cmd.Context(), req); err != nil {
		return fmt.Errorf("creating calendar event: %w", err)
	}
	app.Logger.Info().Str("start_time", req.StartTime).Int("duration_minutes", duration).Msg("calendar event created")

	console := ui.NewConsole(cmd.OutOrStdout(), app.Presenter.Styles())
	console.SectionHeader("Calendar event")
	console.Field("Title", req.Title)
	console.Field("Start", start.Format("2006-01-02 15:04"))
	console.Field("Duration", fmt.Sprintf("%d min", duration))
	console.Field("Attendees", strings.Join(attendees, ", "))
	console.SectionFooter()
	console.Success("Calendar event created successfully!")
	return nil
}
