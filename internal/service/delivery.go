// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-recording-recap-service/internal/domain/models"
)

// FormatRecapMessage renders a structured summary as the recap message posted
// to the destination channel. The layout is fixed; every field is always
// present because the summary carries placeholder text for missing data.
func FormatRecapMessage(summary models.StructuredSummary) string {
	details := summary.MeetingDetails
	share := summary.ShareDetails
	section := summary.MeetingSummary

	var b strings.Builder

	b.WriteString("*Meeting Title & Basic Details:*\n")
	fmt.Fprintf(&b, "- **Title:** %s\n", details.Title)
	fmt.Fprintf(&b, "- **Date & Time:** %s\n", details.DateTime)
	fmt.Fprintf(&b, "- **Host Email:** %s\n", details.HostEmail)
	fmt.Fprintf(&b, "- **Meeting ID:** %s\n", details.MeetingID)
	fmt.Fprintf(&b, "- **Participants:** %s\n", strings.Join(details.Participants, ", "))
	fmt.Fprintf(&b, "- **Duration:** %s\n\n", details.Duration)

	b.WriteString("*Share Details:*\n")
	fmt.Fprintf(&b, "- **Play URL:** %s\n", share.PlayURL)
	fmt.Fprintf(&b, "- **Password:** %s\n\n", share.Password)

	b.WriteString("*Meeting Summary:*\n")
	fmt.Fprintf(&b, "- **Brief Overview:** %s\n", section.SummaryOverview)

	b.WriteString("- **Main Topics Discussed:**\n")
	for _, topic := range section.MainTopics {
		fmt.Fprintf(&b, "  - **%s** (Timestamp: %s)\n", topic.Topic, topic.Timestamp)
	}

	b.WriteString("\n- **Action Items:**\n")
	for _, action := range section.ActionItems {
		fmt.Fprintf(&b, "  - **%s** (Responsible: %s)\n", action.ActionItem, action.Responsible)
	}

	return b.String()
}
