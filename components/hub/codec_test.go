package hub

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := testWidget()
	cfg.Title = "Свяжитесь с нами 👋"
	cfg.Description = "日本語 & \"quotes\" </script>"
	cfg.CustomWidgetIconURL = "data:image/png;base64,iVBORw0KGgo="
	cfg.WidgetIconMode = IconCustom
	cfg.Channels[0].CustomIconURL = "data:image/svg+xml;base64,PHN2Zy8+"
	cfg.Channels[0].IconMode = IconCustom

	payload, err := EncodeConfig(cfg)
	require.NoError(t, err)
	_, err = base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	decoded, err := DecodeConfig(payload)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeConfigRejectsGarbage(t *testing.T) {
	_, err := DecodeConfig("%%%")
	assert.Error(t, err)
	_, err = DecodeConfig(base64.StdEncoding.EncodeToString([]byte("nope")))
	assert.Error(t, err)
}

func TestScriptJSONIsASCII(t *testing.T) {
	out, err := scriptJSON(map[string]string{"title": "héllo 👋 </script>"})
	require.NoError(t, err)
	for _, r := range out {
		assert.Less(t, r, rune(0x80))
	}
	assert.Contains(t, out, `\ud83d\udc4b`)
	assert.Contains(t, out, `h\u00e9llo`)
	assert.False(t, strings.Contains(out, "</"))
}
