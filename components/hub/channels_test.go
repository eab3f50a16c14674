package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramInputStripsAt(t *testing.T) {
	assert.Equal(t, "johndoe", NormalizeInput(ChannelTelegram, "john@doe"))
	assert.Equal(t, "@johndoe", FieldValue(ChannelTelegram, "john@doe"))
	assert.Equal(t, "@johndoe", FormatFinalValue(ChannelTelegram, "john@doe"))
}

func TestWhatsAppInputKeepsDigits(t *testing.T) {
	assert.Equal(t, "79001234567", NormalizeInput(ChannelWhatsApp, "+7 (900) 123-45-67"))
	assert.Equal(t, "+79001234567", FormatFinalValue(ChannelWhatsApp, "+7 (900) 123-45-67"))
}

func TestMailInputsCutAtDomain(t *testing.T) {
	assert.Equal(t, "john.doe", NormalizeInput(ChannelGmail, "John.Doe@Example.com"))
	assert.Equal(t, "john.doe@gmail.com", FormatFinalValue(ChannelGmail, " John.Doe "))
	assert.Equal(t, "ja_ne-x@proton.me", FormatFinalValue(ChannelProton, "Ja_Ne-X!?@proton.me"))
}

func TestFormatFinalValueIsIdempotent(t *testing.T) {
	inputs := map[ChannelType][]string{
		ChannelTelegram: {"john@doe", "@already", "  spaced  "},
		ChannelWhatsApp: {"+7 (900) 123-45-67", "+15551234567", "abc"},
		ChannelGmail:    {"User.Name", "someone@gmail.com", "MiXeD"},
		ChannelProton:   {"secure", "someone@proton.me", "x y z"},
	}
	for channel, values := range inputs {
		for _, value := range values {
			once := FormatFinalValue(channel, value)
			twice := FormatFinalValue(channel, once)
			assert.Equal(t, once, twice, "channel %s input %q", channel, value)
		}
	}
}

func TestContactMissingIgnoresSeed(t *testing.T) {
	assert.True(t, ContactMissing(ChannelTelegram, "@"))
	assert.True(t, ContactMissing(ChannelWhatsApp, "  "))
	assert.True(t, ContactMissing(ChannelGmail, "@gmail.com"))
	assert.False(t, ContactMissing(ChannelTelegram, "@a"))
}

func TestTrimBlankCoversBrowserWhitespace(t *testing.T) {
	assert.Equal(t, "john", TrimBlank("\ufeff john\u0085\u00a0"))
	assert.Equal(t, "@john", FormatFinalValue(ChannelTelegram, "john\u0085"))
	assert.Equal(t, "@john", FormatFinalValue(ChannelTelegram, "\ufeffjohn"))
	assert.True(t, ContactMissing(ChannelGmail, "\u3000\ufeff"))
	assert.Equal(t, "a\u00a0b", TrimBlank("a\u00a0b"))
}

func TestCapabilityTableCoversEveryChannel(t *testing.T) {
	caps := Capabilities()
	require.Len(t, caps, len(ChannelTypes()))
	for _, channel := range ChannelTypes() {
		capability, ok := CapabilityFor(channel)
		require.True(t, ok, "missing capability for %s", channel)
		assert.Equal(t, channel, capability.Type)
		assert.NotEmpty(t, capability.Icon)
		assert.NotEmpty(t, capability.Color)
		assert.Equal(t, capability.Icon, ChannelIcon(channel))
	}
	assert.Equal(t, "@", SeedValue(ChannelTelegram))
	assert.Equal(t, "", SeedValue(ChannelGmail))
}

func TestUnknownChannelFallsBack(t *testing.T) {
	unknown := ChannelType("fax")
	assert.False(t, unknown.Valid())
	assert.Equal(t, fallbackIcon, ChannelIcon(unknown))
	assert.Equal(t, fallbackColor, ChannelColor(unknown))
	assert.Equal(t, "raw value", NormalizeInput(unknown, "raw value"))
	assert.Equal(t, "raw", FormatFinalValue(unknown, " raw "))
}
