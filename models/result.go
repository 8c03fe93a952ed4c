package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnalysisResult is the analysis service's response. Every field may be
// missing. Raw keeps the exact bytes received so re-encoding passes unknown
// fields through untouched.
type AnalysisResult struct {
	Summary         string           `json:"summary"`
	ActionItems     []ActionItem     `json:"action_items"`
	KeyDecisions    []Text           `json:"key_decisions"`
	TopicSegments   []TopicSegment   `json:"topic_segments"`
	SpeakerInsights []SpeakerInsight `json:"speaker_insights"`
	NextSteps       []Text           `json:"next_steps"`

	Raw json.RawMessage `json:"-"`
}

// ParseAnalysisResult decodes data and keeps a copy of it as Raw.
func ParseAnalysisResult(data []byte) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	var p struct {
		plain
		Summary Text `json:"summary"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding analysis result: %w", err)
	}
	*r = AnalysisResult(p.plain)
	r.Summary = string(p.Summary)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain AnalysisResult
	return json.Marshal(plain(r))
}

type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
	Priority string `json:"priority,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare string, which becomes the task.
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	if s, ok := decodeScalar(data); ok {
		*a = ActionItem{Task: s}
		return nil
	}
	var obj struct {
		Task     Text `json:"task"`
		Assignee Text `json:"assignee"`
		Priority Text `json:"priority"`
		Deadline Text `json:"deadline"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding action item: %w", err)
	}
	*a = ActionItem{
		Task:     string(obj.Task),
		Assignee: string(obj.Assignee),
		Priority: string(obj.Priority),
		Deadline: string(obj.Deadline),
	}
	return nil
}

type TopicSegment struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary,omitempty"`
}

func (t *TopicSegment) UnmarshalJSON(data []byte) error {
	if s, ok := decodeScalar(data); ok {
		*t = TopicSegment{Topic: s}
		return nil
	}
	var obj struct {
		Topic   Text `json:"topic"`
		Summary Text `json:"summary"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding topic segment: %w", err)
	}
	*t = TopicSegment{Topic: string(obj.Topic), Summary: string(obj.Summary)}
	return nil
}

type SpeakerInsight struct {
	Speaker             string `json:"speaker"`
	Tone                string `json:"tone,omitempty"`
	ContributionSummary string `json:"contribution_summary,omitempty"`
}

// UnmarshalJSON reads speaker or name, and contribution_summary or contribution.
func (s *SpeakerInsight) UnmarshalJSON(data []byte) error {
	if name, ok := decodeScalar(data); ok {
		*s = SpeakerInsight{Speaker: name}
		return nil
	}
	var obj struct {
		Speaker             Text `json:"speaker"`
		Name                Text `json:"name"`
		Tone                Text `json:"tone"`
		ContributionSummary Text `json:"contribution_summary"`
		Contribution        Text `json:"contribution"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding speaker insight: %w", err)
	}
	s.Speaker = firstNonEmpty(string(obj.Speaker), string(obj.Name))
	s.Tone = string(obj.Tone)
	s.ContributionSummary = firstNonEmpty(string(obj.ContributionSummary), string(obj.Contribution))
	return nil
}

// Text is a string that also accepts numbers, booleans and objects. Objects
// are kept as compact JSON text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if s, ok := decodeScalar(data); ok {
		*t = Text(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("decoding text: %w", err)
	}
	*t = Text(buf.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Strings converts a Text slice for callers that want plain strings.
func Strings(items []Text) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

// decodeScalar handles null, strings, numbers and booleans.
func decodeScalar(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", true
	}
	switch trimmed[0] {
	case '{', '[':
		return "", false
	case 'n':
		return "", true
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case 't', 'f':
		b, err := strconv.ParseBool(string(trimmed))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", false
		}
		return n.String(), true
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
