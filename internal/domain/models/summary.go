// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Placeholder values for summary fields that could not be produced. Every
// top-level section of the structured summary is always present downstream;
// the delivery stage never has to special-case missing data.
const (
	PlaceholderNoOverview      = "No overview available."
	PlaceholderNoTranscription = "No transcription available."
	PlaceholderNoPlayURL       = "No play URL available."
	PlaceholderNoPassword      = "No password available."
)

// MeetingDetails is the metadata section of a structured summary.
type MeetingDetails struct {
	Title        string   `json:"title"`
	DateTime     string   `json:"date_time"`
	HostEmail    string   `json:"host_email"`
	MeetingID    string   `json:"meeting_id"`
	Participants []string `json:"participants"`
	Duration     string   `json:"duration"`
}

// ShareDetails is the playback section of a structured summary.
type ShareDetails struct {
	PlayURL  string `json:"play_url"`
	Password string `json:"password"`
}

// SummaryTopic is one discussed topic with its transcript timestamp.
type SummaryTopic struct {
	Topic     string `json:"topic"`
	Timestamp string `json:"timestamp"`
}

// SummaryActionItem is one action item with its owner.
type SummaryActionItem struct {
	ActionItem  string `json:"action_item"`
	Responsible string `json:"responsible"`
}

// MeetingSummarySection is the model-generated section of a structured summary.
type MeetingSummarySection struct {
	SummaryOverview string              `json:"summary_overview"`
	MainTopics      []SummaryTopic      `json:"main_topics"`
	ActionItems     []SummaryActionItem `json:"action_items"`
}

// StructuredSummary is the complete summary object delivered downstream.
// All top-level sections are always present, even when individual pipeline
// stages failed.
type StructuredSummary struct {
	MeetingDetails MeetingDetails        `json:"meeting_details"`
	ShareDetails   ShareDetails          `json:"share_details"`
	MeetingSummary MeetingSummarySection `json:"meeting_summary"`
}

// FillMissing replaces absent summary fields with their placeholder values so
// the message formatting stage stays total.
func (s *StructuredSummary) FillMissing() {
	if s.ShareDetails.PlayURL == "" {
		s.ShareDetails.PlayURL = PlaceholderNoPlayURL
	}
	if s.ShareDetails.Password == "" {
		s.ShareDetails.Password = PlaceholderNoPassword
	}
	if s.MeetingSummary.SummaryOverview == "" {
		s.MeetingSummary.SummaryOverview = PlaceholderNoOverview
	}
	if s.MeetingSummary.MainTopics == nil {
		s.MeetingSummary.MainTopics = []SummaryTopic{}
	}
	if s.MeetingSummary.ActionItems == nil {
		s.MeetingSummary.ActionItems = []SummaryActionItem{}
	}
	if len(s.MeetingDetails.Participants) == 0 {
		s.MeetingDetails.Participants = []string{UnknownParticipant}
	}
}

// NewPlaceholderSummary builds a complete structured summary around known
// meeting metadata with placeholder text for the model-generated sections.
func NewPlaceholderSummary(details MeetingDetails, share ShareDetails, overview string) StructuredSummary {
	if overview == "" {
		overview = PlaceholderNoOverview
	}
	summary := StructuredSummary{
		MeetingDetails: details,
		ShareDetails:   share,
		MeetingSummary: MeetingSummarySection{
			SummaryOverview: overview,
			MainTopics:      []SummaryTopic{},
			ActionItems:     []SummaryActionItem{},
		},
	}
	summary.FillMissing()
	return summary
}
