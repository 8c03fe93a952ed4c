package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultEmailSubject pre-fills the email modal and is restored after a send.
const DefaultEmailSubject = "Meeting Analysis Summary"

// DefaultEventDuration is used when the duration field is left empty.
const DefaultEventDuration = 60

type EmailRequest struct {
	RecipientEmail string          `json:"recipient_email" validate:"required"`
	Subject        string          `json:"subject" validate:"required"`
	MeetingData    *AnalysisResult `json:"meeting_data"`
	IncludePDF     bool            `json:"include_pdf"`
}

type EventRequest struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	StartTime       string          `json:"start_time" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"gt=0"`
	Attendees       []string        `json:"attendees"`
	MeetingData     *AnalysisResult `json:"meeting_data"`
}

// EventDescription is the description attached to follow-up events.
func EventDescription(result *AnalysisResult) string {
	summary := ""
	if result != nil {
		summary = result.Summary
	}
	return fmt.Sprintf("Follow-up meeting based on analysis: %s", summary)
}

// ISOTimestamp formats t in UTC with millisecond precision, e.g.
// 2025-01-10T15:00:00.000Z.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// eventTimeLayouts are tried in order; the first two are local time.
var eventTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseEventTime reads a start time in loc or RFC 3339.
func ParseEventTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date/time %q", s)
}

// ParseDuration reads an event length in minutes. Empty means
// DefaultEventDuration; anything else must be a positive integer.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEventDuration, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return n, nil
}

// Ack is the acknowledgement returned by the email and calendar endpoints.
type Ack struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (a *Ack) UnmarshalJSON(data []byte) error {
	var obj struct {
		Status  Text `json:"status"`
		Message Text `json:"message"`
	}
	// Acks are informational; non-object bodies are kept only as Raw.
	if err := json.Unmarshal(data, &obj); err == nil {
		a.Status = string(obj.Status)
		a.Message = string(obj.Message)
	}
	a.Raw = append(json.RawMessage(nil), data...)
	return nil
}
