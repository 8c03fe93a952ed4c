package models

import (
	"path/filepath"
	"strings"
)

// MeetingType selects the analysis template the service applies.
type MeetingType string

const (
	MeetingGeneral       MeetingType = "general"
	MeetingStandup       MeetingType = "standup"
	MeetingPlanning      MeetingType = "planning"
	MeetingRetrospective MeetingType = "retrospective"
	MeetingClient        MeetingType = "client"
	MeetingBrainstorm    MeetingType = "brainstorm"
)

// MeetingTypes lists the templates in selector order.
var MeetingTypes = []MeetingType{
	MeetingGeneral,
	MeetingStandup,
	MeetingPlanning,
	MeetingRetrospective,
	MeetingClient,
	MeetingBrainstorm,
}

var meetingTypeDescriptions = map[MeetingType]string{
	MeetingGeneral:       "General meeting analysis",
	MeetingStandup:       "Focus on daily progress, blockers, and next steps",
	MeetingPlanning:      "Emphasize project planning, task allocation, and timelines",
	MeetingRetrospective: "Analyze what went well, what didn't, and improvements",
	MeetingClient:        "Focus on client requirements, updates, and relationship management",
	MeetingBrainstorm:    "Highlight creative ideas, problem-solving, and innovation",
}

func (t MeetingType) String() string {
	return string(t)
}

// Description returns the one-line summary shown under the selector.
func (t MeetingType) Description() string {
	return meetingTypeDescriptions[t]
}

// IsValid reports whether t is one of MeetingTypes.
func (t MeetingType) IsValid() bool {
	_, ok := meetingTypeDescriptions[t]
	return ok
}

// Next returns the template after t, wrapping around. Prev goes the other way.
func (t MeetingType) Next() MeetingType {
	return t.shift(1)
}

func (t MeetingType) Prev() MeetingType {
	return t.shift(-1)
}

func (t MeetingType) shift(by int) MeetingType {
	idx := 0
	for i, mt := range MeetingTypes {
		if mt == t {
			idx = i
			break
		}
	}
	n := len(MeetingTypes)
	return MeetingTypes[((idx+by)%n+n)%n]
}

type AnalysisRequest struct {
	Text         string      `json:"text" validate:"required"`
	MeetingType  MeetingType `json:"meeting_type" validate:"required,oneof=general standup planning retrospective client brainstorm"`
	Participants []string    `json:"participants"`
}

// AllowedExtensions are the transcript formats the upload endpoint accepts.
var AllowedExtensions = []string{".txt", ".vtt", ".srt"}

type TranscriptFile struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// HasAllowedExtension matches name against AllowedExtensions, ignoring case.
func HasAllowedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
