// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// ChannelCandidate describes one destination channel in the messaging
// workspace. The candidate set is fetched fresh per routing decision because
// channel names and topics change between events.
type ChannelCandidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Topic string `json:"topic"`
}
