package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ettle/strcase"
)

// MaxProjectSize is the largest project file accepted by ImportProject.
const MaxProjectSize int64 = 5 * 1024 * 1024

// ImportedSuffix marks the name of an imported widget.
const ImportedSuffix = " (Imported)"

// ProjectFilename returns the download name of a project export.
func ProjectFilename(name string) string {
	slug := strcase.ToKebab(strings.TrimSpace(name))
	if slug == "" {
		slug = "widget"
	}
	return "hub-project-" + slug + ".json"
}

// ExportProject serializes cfg as an indented project file.
func ExportProject(cfg WidgetConfig) ([]byte, string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("hub: export project: %w", err)
	}
	return data, ProjectFilename(cfg.Name), nil
}

// DecodeProject reads and validates a project file. Size and extension are
// checked before any content is read; pass a negative size when unknown.
func DecodeProject(filename string, size int64, r io.Reader) (WidgetConfig, error) {
	if size > MaxProjectSize {
		return WidgetConfig{}, newValidationError("project", fmt.Sprintf(
			"file is too large (%s); the limit is %s",
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(MaxProjectSize)),
		), nil)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return WidgetConfig{}, newValidationError("project", "only .json project files can be imported", nil)
	}
	if r == nil {
		return WidgetConfig{}, newValidationError("project", "file is empty", nil)
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxProjectSize+1))
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("hub: read project: %w", err)
	}
	if int64(len(data)) > MaxProjectSize {
		return WidgetConfig{}, newValidationError("project", fmt.Sprintf(
			"file is too large; the limit is %s", humanize.IBytes(uint64(MaxProjectSize)),
		), nil)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return WidgetConfig{}, newValidationError("project", "file is empty", nil)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return WidgetConfig{}, newValidationError("project", "file is not valid JSON", err)
	}
	if err := validateProjectDocument(doc); err != nil {
		return WidgetConfig{}, err
	}
	var cfg WidgetConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return WidgetConfig{}, newValidationError("project", "file does not describe a widget", err)
	}
	return cfg, nil
}

// PrepareImported gives an imported config a fresh identity and fills
// defaults so it can live next to the original.
func PrepareImported(cfg WidgetConfig, id string, now time.Time) (WidgetConfig, error) {
	out := ApplyDefaults(cfg)
	out.ID = id
	out.CreatedAt = now.UnixMilli()
	out.Name = cfg.Name + ImportedSuffix
	if err := ValidateConfig(out); err != nil {
		return WidgetConfig{}, err
	}
	return out, nil
}
