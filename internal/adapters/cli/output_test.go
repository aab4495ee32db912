// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fontgrab/fontgrab/internal/domain"
)

func TestOutputAdapter_Success(t *testing.T) {
	tests := []struct {
		name         string
		format       OutputFormat
		quiet        bool
		message      string
		data         any
		wantContains string
		wantEmpty    bool
	}{
		{
			name:         "text format with message",
			format:       TextFormat,
			quiet:        false,
			message:      "12 done, 1 failed",
			data:         nil,
			wantContains: "12 done, 1 failed",
		},
		{
			name:      "quiet mode suppresses message",
			format:    TextFormat,
			quiet:     true,
			message:   "12 done, 1 failed",
			data:      nil,
			wantEmpty: true,
		},
		{
			name:    "JSON format with data",
			format:  JSONFormat,
			quiet:   false,
			message: "ignored",
			data: domain.Report{
				Total:    3,
				Success:  2,
				Failed:   1,
				Duration: 5 * time.Second,
			},
			wantContains: `"success"`,
		},
		{
			name:      "JSON format without data stays silent",
			format:    JSONFormat,
			quiet:     false,
			message:   "human text",
			data:      nil,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			adapter := NewOutputAdapterWithWriter(&buf, tt.format, tt.quiet)

			err := adapter.Success(tt.message, tt.data)
			require.NoError(t, err)

			output := buf.String()
			if tt.wantEmpty {
				assert.Empty(t, output)
			} else {
				assert.Contains(t, output, tt.wantContains)
			}

			// Verify JSON is valid when in JSON format with data
			if tt.format == JSONFormat && tt.data != nil {
				var result map[string]any

				err := json.Unmarshal(buf.Bytes(), &result)
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputAdapter_Error(t *testing.T) {
	tests := []struct {
		name         string
		format       OutputFormat
		quiet        bool
		message      string
		wantContains string
	}{
		{
			name:         "text format shows error prefix",
			format:       TextFormat,
			quiet:        false,
			message:      "something went wrong",
			wantContains: "Error: something went wrong",
		},
		{
			name:         "quiet mode still emits errors",
			format:       TextFormat,
			quiet:        true,
			message:      "something went wrong",
			wantContains: "Error: something went wrong",
		},
		{
			name:         "JSON format wraps error",
			format:       JSONFormat,
			quiet:        false,
			message:      "something went wrong",
			wantContains: `"error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			adapter := NewOutputAdapterWithWriter(&buf, tt.format, tt.quiet)

			err := adapter.Error(tt.message)
			require.NoError(t, err)

			assert.Contains(t, buf.String(), tt.wantContains)

			// Verify JSON is valid
			if tt.format == JSONFormat {
				var result map[string]string

				err := json.Unmarshal(buf.Bytes(), &result)
				require.NoError(t, err)
				assert.Equal(t, tt.message, result["error"])
			}
		})
	}
}

func TestOutputAdapter_Table(t *testing.T) {
	headers := []string{"Font", "Cached", "Installed"}
	rows := [][]string{
		{"satoshi", "yes", "yes"},
		{"cabinet-grotesk", "yes", "no"},
		{"zodiak", "no", "no"},
	}

	t.Run("text format creates aligned table", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, TextFormat, false)

		err := adapter.Table(headers, rows)
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "Font")
		assert.Contains(t, output, "Cached")
		assert.Contains(t, output, "Installed")
		assert.Contains(t, output, "satoshi")
		assert.Contains(t, output, "cabinet-grotesk")
		assert.Contains(t, output, "zodiak")

		// Check for separator line
		assert.Contains(t, output, "----")
	})

	t.Run("JSON format outputs structured data", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)

		err := adapter.Table(headers, rows)
		require.NoError(t, err)

		var result map[string]any

		err = json.Unmarshal(buf.Bytes(), &result)
		require.NoError(t, err)

		// Headers come back as []any from JSON unmarshal
		resultHeaders, ok := result["headers"].([]any)
		require.True(t, ok, "headers should be []any")
		assert.Len(t, resultHeaders, len(headers))

		for i, h := range headers {
			assert.Equal(t, h, resultHeaders[i])
		}

		resultRows, ok := result["rows"].([]any)
		require.True(t, ok, "rows should be []any")
		assert.Len(t, resultRows, 3)
	})

	t.Run("quiet mode suppresses table", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, TextFormat, true)

		err := adapter.Table(headers, rows)
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})
}

func TestOutputAdapter_Progress(t *testing.T) {
	t.Run("text format shows progress", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, TextFormat, false)

		err := adapter.Progress("Fetching fonts... 50%")
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "Fetching fonts... 50%")
		assert.True(t, strings.HasPrefix(output, "\r"))
	})

	t.Run("JSON format suppresses progress", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)

		err := adapter.Progress("Fetching fonts... 50%")
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})

	t.Run("quiet mode suppresses progress", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, TextFormat, true)

		err := adapter.Progress("Fetching fonts... 50%")
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})
}

func TestOutputAdapter_InfoSuppressedInJSON(t *testing.T) {
	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)

	err := adapter.Info("manifest not written")
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}

func TestOutputFromContext(t *testing.T) {
	t.Run("creates text adapter by default", func(t *testing.T) {
		adapter := OutputFromContext(false, false)
		assert.NotNil(t, adapter)
		assert.False(t, adapter.IsQuiet())
	})

	t.Run("creates JSON adapter when flag set", func(t *testing.T) {
		adapter := OutputFromContext(true, false)
		assert.NotNil(t, adapter)

		// Test JSON output
		var buf bytes.Buffer

		concreteAdapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)
		err := concreteAdapter.Success("", map[string]string{"test": "value"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"test"`)
	})

	t.Run("creates quiet adapter when flag set", func(t *testing.T) {
		adapter := OutputFromContext(false, true)
		assert.NotNil(t, adapter)
		assert.True(t, adapter.IsQuiet())
	})
}

func TestOutputAdapter_ComplexStructures(t *testing.T) {
	t.Run("Report JSON serialization", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)

		report := domain.Report{
			RunID:   "run-1",
			Source:  "api",
			Total:   3,
			Success: 1,
			Skipped: 1,
			Failed:  1,
			Failures: []domain.Failure{
				{Identifier: "zodiak", Reason: "HTTP 404"},
			},
			Duration:  10 * time.Second,
			Timestamp: time.Now(),
		}

		err := adapter.Success("", report)
		require.NoError(t, err)

		var decoded domain.Report

		err = json.Unmarshal(buf.Bytes(), &decoded)
		require.NoError(t, err)

		assert.Equal(t, report.Source, decoded.Source)
		assert.Equal(t, report.Total, decoded.Total)
		assert.Equal(t, report.Failed, decoded.Failed)
		assert.Equal(t, report.Duration, decoded.Duration)
		require.Len(t, decoded.Failures, 1)
		assert.Equal(t, domain.Identifier("zodiak"), decoded.Failures[0].Identifier)
	})

	t.Run("ListResult with nested entries", func(t *testing.T) {
		var buf bytes.Buffer

		adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, false)

		result := domain.ListResult{
			Entries: []domain.ListEntry{
				{Identifier: "satoshi", Cached: true, CacheSize: 1024000, Installed: true},
				{Identifier: "zodiak", Cached: false, Installed: false},
			},
			Total:     2,
			Timestamp: time.Now(),
		}

		err := adapter.Success("", result)
		require.NoError(t, err)

		var decoded domain.ListResult

		err = json.Unmarshal(buf.Bytes(), &decoded)
		require.NoError(t, err)

		assert.Len(t, decoded.Entries, 2)
		assert.Equal(t, 2, decoded.Total)
		assert.Equal(t, domain.Identifier("satoshi"), decoded.Entries[0].Identifier)
		assert.True(t, decoded.Entries[0].Cached)
		assert.Equal(t, int64(1024000), decoded.Entries[0].CacheSize)
	})
}
