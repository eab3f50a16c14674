package hub

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportProjectFilename(t *testing.T) {
	cfg := testWidget()
	cfg.Name = "Support Desk 2"
	data, filename, err := ExportProject(cfg)
	require.NoError(t, err)
	assert.Equal(t, "hub-project-support-desk-2.json", filename)
	assert.Contains(t, string(data), "\n  \"id\": \"w-test\"")
	assert.Equal(t, "hub-project-widget.json", ProjectFilename("  "))
}

func TestDecodeProjectRoundTrip(t *testing.T) {
	cfg := testWidget()
	data, filename, err := ExportProject(cfg)
	require.NoError(t, err)

	decoded, err := DecodeProject(filename, int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeProjectRejections(t *testing.T) {
	valid := `{"id":"w-1","name":"Imported","channels":[]}`
	cases := []struct {
		name     string
		filename string
		size     int64
		body     string
		reason   string
	}{
		{"too large", "big.json", MaxProjectSize + 1, valid, "too large"},
		{"extension", "project.txt", 10, valid, ".json"},
		{"empty", "empty.json", 0, "   ", "empty"},
		{"invalid json", "broken.json", 5, "{nope", "not valid JSON"},
		{"missing channels", "partial.json", 30, `{"id":"w-1","name":"Imported"}`, "channels"},
		{"channels not array", "partial.json", 30, `{"id":"w-1","name":"x","channels":{}}`, "channels"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeProject(tc.filename, tc.size, strings.NewReader(tc.body))
			require.Error(t, err)
			assert.True(t, IsValidation(err), "expected validation error, got %T", err)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestDecodeProjectRejectsOversizedStream(t *testing.T) {
	body := `{"id":"w-1","name":"x","channels":[],"description":"` + strings.Repeat("a", int(MaxProjectSize)) + `"}`
	_, err := DecodeProject("large.json", -1, strings.NewReader(body))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPrepareImported(t *testing.T) {
	source := `{"id":"w-old","name":"Sales","channels":[{"type":"telegram","label":"TG","enabled":true}]}`
	cfg, err := DecodeProject("sales.JSON", int64(len(source)), strings.NewReader(source))
	require.NoError(t, err)

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	imported, err := PrepareImported(cfg, "w-new", now)
	require.NoError(t, err)
	assert.Equal(t, "w-new", imported.ID)
	assert.Equal(t, "Sales (Imported)", imported.Name)
	assert.Equal(t, now.UnixMilli(), imported.CreatedAt)
	assert.Equal(t, PanelClassic, imported.PanelStyle)
	assert.Equal(t, IconDefault, imported.Channels[0].IconMode)
}

func TestPrepareImportedRejectsUnknownChannel(t *testing.T) {
	source := `{"id":"w-old","name":"Sales","channels":[{"type":"fax"}]}`
	cfg, err := DecodeProject("sales.json", int64(len(source)), strings.NewReader(source))
	require.NoError(t, err)
	_, err = PrepareImported(cfg, "w-new", time.Now())
	assert.True(t, IsValidation(err))
}
