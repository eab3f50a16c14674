package hub

import (
	"regexp"
	"strings"
)

const (
	fallbackIcon  = "fa-solid fa-question"
	fallbackColor = "bg-slate-500"
)

// Capability holds everything channel specific: presentation, input
// normalization and the prefix/suffix used to build the final contact value.
// Strip is a regular expression that must mean the same thing in RE2 and in
// browser JavaScript, since emitted scripts receive the table verbatim.
type Capability struct {
	Type      ChannelType `json:"type"`
	Icon      string      `json:"icon"`
	Color     string      `json:"color"`
	Prefix    string      `json:"prefix"`
	Suffix    string      `json:"suffix"`
	Seed      string      `json:"seed"`
	Lowercase bool        `json:"lowercase"`
	CutAt     string      `json:"cutAt"`
	Strip     string      `json:"strip"`
	InputType string      `json:"inputType"`

	strip *regexp.Regexp
}

var capabilityTable = map[ChannelType]Capability{
	ChannelTelegram: newCapability(Capability{
		Type:      ChannelTelegram,
		Icon:      "fa-brands fa-telegram",
		Color:     "bg-sky-500",
		Prefix:    "@",
		Seed:      "@",
		Strip:     "@",
		InputType: "text",
	}),
	ChannelWhatsApp: newCapability(Capability{
		Type:      ChannelWhatsApp,
		Icon:      "fa-brands fa-whatsapp",
		Color:     "bg-emerald-500",
		Prefix:    "+",
		Strip:     "[^0-9]",
		InputType: "tel",
	}),
	ChannelGmail: newCapability(Capability{
		Type:      ChannelGmail,
		Icon:      "fa-solid fa-envelope",
		Color:     "bg-red-500",
		Suffix:    "@gmail.com",
		Lowercase: true,
		CutAt:     "@",
		Strip:     "[^a-z0-9._-]",
		InputType: "text",
	}),
	ChannelProton: newCapability(Capability{
		Type:      ChannelProton,
		Icon:      "fa-solid fa-shield-halved",
		Color:     "bg-purple-600",
		Suffix:    "@proton.me",
		Lowercase: true,
		CutAt:     "@",
		Strip:     "[^a-z0-9._-]",
		InputType: "text",
	}),
}

func newCapability(c Capability) Capability {
	if c.Strip != "" {
		c.strip = regexp.MustCompile(c.Strip)
	}
	return c
}

// CapabilityFor returns the capability of t.
func CapabilityFor(t ChannelType) (Capability, bool) {
	c, ok := capabilityTable[t]
	return c, ok
}

// Capabilities returns the table keyed by channel type.
func Capabilities() map[ChannelType]Capability {
	out := make(map[ChannelType]Capability, len(capabilityTable))
	for k, v := range capabilityTable {
		out[k] = v
	}
	return out
}

// ChannelIcon returns the icon classes for t.
func ChannelIcon(t ChannelType) string {
	if c, ok := capabilityTable[t]; ok {
		return c.Icon
	}
	return fallbackIcon
}

// ChannelColor returns the badge color class for t.
func ChannelColor(t ChannelType) string {
	if c, ok := capabilityTable[t]; ok {
		return c.Color
	}
	return fallbackColor
}

// NormalizeInput cleans raw keystroke input for channel t.
func NormalizeInput(t ChannelType, raw string) string {
	c, ok := capabilityTable[t]
	if !ok {
		return raw
	}
	value := raw
	if c.Lowercase {
		value = strings.ToLower(value)
	}
	if c.CutAt != "" {
		if idx := strings.Index(value, c.CutAt); idx >= 0 {
			value = value[:idx]
		}
	}
	if c.strip != nil {
		value = c.strip.ReplaceAllString(value, "")
	}
	return value
}

// FieldValue is what the contact input shows after a keystroke: the channel
// seed followed by the normalized text.
func FieldValue(t ChannelType, raw string) string {
	c, ok := capabilityTable[t]
	if !ok {
		return raw
	}
	return c.Seed + NormalizeInput(t, raw)
}

// BlankChars is the whitespace set trimmed from contact values and messages.
// It is the union of unicode.IsSpace and the JavaScript String.prototype.trim
// set, and the emitted runtime trims with the same characters.
const BlankChars = "\t\n\v\f\r \u0085\u00a0\u1680" +
	"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a" +
	"\u2028\u2029\u202f\u205f\u3000\ufeff"

// TrimBlank removes leading and trailing BlankChars.
func TrimBlank(s string) string {
	return strings.Trim(s, BlankChars)
}

// SeedValue is the initial contact input for t.
func SeedValue(t ChannelType) string {
	return capabilityTable[t].Seed
}

// FormatFinalValue builds the contact value sent to the relay. It is
// idempotent: formatting an already formatted value returns it unchanged.
func FormatFinalValue(t ChannelType, raw string) string {
	c, ok := capabilityTable[t]
	trimmed := TrimBlank(raw)
	if !ok {
		return trimmed
	}
	return c.Prefix + NormalizeInput(t, trimmed) + c.Suffix
}

// ContactMissing reports whether value holds nothing beyond the seed.
func ContactMissing(t ChannelType, value string) bool {
	return NormalizeInput(t, TrimBlank(value)) == ""
}
