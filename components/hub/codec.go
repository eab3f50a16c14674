package hub

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// EncodeConfig serializes cfg as base64 of its UTF-8 JSON, the same bytes a
// browser produces with btoa(unescape(encodeURIComponent(json))).
func EncodeConfig(cfg WidgetConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("hub: encode config: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeConfig reverses EncodeConfig.
func DecodeConfig(payload string) (WidgetConfig, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return WidgetConfig{}, fmt.Errorf("hub: decode payload: %w", err)
	}
	var cfg WidgetConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return WidgetConfig{}, fmt.Errorf("hub: decode config: %w", err)
	}
	return cfg, nil
}

// scriptJSON marshals v for inlining into a script. Everything outside ASCII
// is written as \u escapes so the script survives any page charset, and
// "</" can never close the surrounding script element.
func scriptJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(data))
	for _, r := range string(data) {
		switch {
		case r == '/':
			b.WriteString(`\/`)
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String(), nil
}
