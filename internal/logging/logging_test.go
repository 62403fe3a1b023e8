// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCtx(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() context.Context
		expected map[string]string
	}{
		{
			name: "single attribute",
			setup: func() context.Context {
				return AppendCtx(context.Background(), slog.String("meeting_uuid", "abc"))
			},
			expected: map[string]string{"meeting_uuid": "abc"},
		},
		{
			name: "multiple attributes in one call",
			setup: func() context.Context {
				return AppendCtx(context.Background(),
					slog.String("meeting_id", "123"),
					slog.String("meeting_uuid", "abc"),
				)
			},
			expected: map[string]string{"meeting_id": "123", "meeting_uuid": "abc"},
		},
		{
			name: "attributes accumulate",
			setup: func() context.Context {
				ctx := AppendCtx(context.Background(), slog.String("a", "1"))
				return AppendCtx(ctx, slog.String("b", "2"))
			},
			expected: map[string]string{"a": "1", "b": "2"},
		},
		{
			name: "nil parent context",
			setup: func() context.Context {
				return AppendCtx(nil, slog.String("k", "v")) //nolint:staticcheck // nil parent is part of the contract
			},
			expected: map[string]string{"k": "v"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(contextHandler{slog.NewJSONHandler(&buf, nil)})

			logger.InfoContext(tt.setup(), "message")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			for k, v := range tt.expected {
				assert.Equal(t, v, record[k])
			}
		})
	}
}

func TestPriority(t *testing.T) {
	attr := PriorityCritical()
	assert.Equal(t, "priority", attr.Key)
	assert.Equal(t, "critical", attr.Value.String())
}
