// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"strconv"
	"strings"
)

// Sentinels used when meeting metadata is missing. The recap message renders
// every field, so absent data is always replaced with explicit text.
const (
	UnknownDate        = "Unknown Date"
	UnknownTime        = "Unknown Time"
	UnknownDuration    = "Unknown Duration"
	UnknownParticipant = "Unknown Participant"
)

// RecordingFile represents a single recording artifact of a meeting.
type RecordingFile struct {
	ID             string `json:"id"`
	MeetingID      string `json:"meeting_id"`
	RecordingStart string `json:"recording_start"`
	RecordingEnd   string `json:"recording_end"`
	FileType       string `json:"file_type"`
	FileExtension  string `json:"file_extension"`
	FileSize       int64  `json:"file_size"`
	PlayURL        string `json:"play_url"`
	DownloadURL    string `json:"download_url"`
	DownloadToken  string `json:"download_token,omitempty"`
	Status         string `json:"status"`
	RecordingType  string `json:"recording_type"`
}

// supportedFileTypes are the audio/video containers the transcription stage
// can consume.
var supportedFileTypes = map[string]bool{
	"mp4": true,
	"m4a": true,
	"mov": true,
}

// IsSupportedFileType reports whether the file is an audio/video container
// the pipeline can transcribe.
func (f RecordingFile) IsSupportedFileType() bool {
	return supportedFileTypes[strings.ToLower(f.FileType)]
}

// MeetingRecording identifies one completed meeting and its recording
// artifacts, assembled from the webhook payload and the recordings API.
type MeetingRecording struct {
	MeetingID     string
	MeetingUUID   string
	Topic         string
	HostEmail     string
	StartTime     string
	Duration      int
	ShareURL      string
	Passcode      string
	DownloadToken string
	Files         []RecordingFile
}

// FirstSupportedFile returns the first recording file with a supported
// audio/video container type, or nil when none exists.
func (m *MeetingRecording) FirstSupportedFile() *RecordingFile {
	for i := range m.Files {
		if m.Files[i].IsSupportedFileType() {
			return &m.Files[i]
		}
	}
	return nil
}

// DateParts splits the ISO-8601 start time into its date and time components,
// substituting sentinels when the value is not in the expected layout.
func (m *MeetingRecording) DateParts() (string, string) {
	if before, after, found := strings.Cut(m.StartTime, "T"); found {
		if timePart, ok := strings.CutSuffix(after, "Z"); ok {
			return before, timePart
		}
	}
	return UnknownDate, UnknownTime
}

// DurationString renders the meeting duration in minutes, or the unknown
// sentinel when the platform did not report one.
func (m *MeetingRecording) DurationString() string {
	if m.Duration <= 0 {
		return UnknownDuration
	}
	return strconv.Itoa(m.Duration) + " minutes"
}
