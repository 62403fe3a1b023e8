// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

func TestFormatRecapMessage(t *testing.T) {
	t.Run("renders every section", func(t *testing.T) {
		summary := models.StructuredSummary{
			MeetingDetails: models.MeetingDetails{
				Title:        "Q3 Planning",
				DateTime:     "2026-08-20 at 15:00:00",
				HostEmail:    "host@example.com",
				MeetingID:    "123456789",
				Participants: []string{"alice@example.com", "bob@example.com"},
				Duration:     "45 minutes",
			},
			ShareDetails: models.ShareDetails{
				PlayURL:  "https://zoom.us/rec/play/abc",
				Password: "s3cret",
			},
			MeetingSummary: models.MeetingSummarySection{
				SummaryOverview: "Discussed the Q3 roadmap.",
				MainTopics: []models.SummaryTopic{
					{Topic: "Roadmap", Timestamp: "00:01:00"},
					{Topic: "Budget", Timestamp: "00:20:00"},
				},
				ActionItems: []models.SummaryActionItem{
					{ActionItem: "Publish the plan", Responsible: "alice@example.com"},
				},
			},
		}

		message := FormatRecapMessage(summary)

		assert.Contains(t, message, "*Meeting Title & Basic Details:*")
		assert.Contains(t, message, "- **Title:** Q3 Planning")
		assert.Contains(t, message, "- **Date & Time:** 2026-08-20 at 15:00:00")
		assert.Contains(t, message, "- **Host Email:** host@example.com")
		assert.Contains(t, message, "- **Meeting ID:** 123456789")
		assert.Contains(t, message, "- **Participants:** alice@example.com, bob@example.com")
		assert.Contains(t, message, "- **Duration:** 45 minutes")
		assert.Contains(t, message, "- **Play URL:** https://zoom.us/rec/play/abc")
		assert.Contains(t, message, "- **Password:** s3cret")
		assert.Contains(t, message, "- **Brief Overview:** Discussed the Q3 roadmap.")
		assert.Contains(t, message, "  - **Roadmap** (Timestamp: 00:01:00)")
		assert.Contains(t, message, "  - **Budget** (Timestamp: 00:20:00)")
		assert.Contains(t, message, "  - **Publish the plan** (Responsible: alice@example.com)")
	})

	t.Run("placeholder summary renders without special cases", func(t *testing.T) {
		summary := models.NewPlaceholderSummary(
			models.MeetingDetails{
				Title:     "Lost Meeting",
				DateTime:  models.UnknownDate + " at " + models.UnknownTime,
				MeetingID: "42",
				Duration:  models.UnknownDuration,
			},
			models.ShareDetails{},
			models.PlaceholderNoTranscription,
		)

		message := FormatRecapMessage(summary)

		assert.Contains(t, message, "- **Brief Overview:** "+models.PlaceholderNoTranscription)
		assert.Contains(t, message, "- **Play URL:** "+models.PlaceholderNoPlayURL)
		assert.Contains(t, message, "- **Password:** "+models.PlaceholderNoPassword)
		assert.Contains(t, message, "- **Participants:** "+models.UnknownParticipant)
		assert.Contains(t, message, "- **Main Topics Discussed:**")
		assert.Contains(t, message, "- **Action Items:**")
	})
}
