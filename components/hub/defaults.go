package hub

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultName               = "Default Widget"
	DefaultTitle              = "Need help?"
	DefaultDescription        = "Choose your preferred contact method and we will get back to you."
	DefaultThemeColor         = "#4f46e5"
	DefaultWidgetSize         = 64
	DefaultWidgetBorderRadius = 24
	DefaultOutlineColor       = "#000000"
	DefaultPanelWidth         = 340
	DefaultDescriptionRows    = 2
	DefaultMessagePlaceholder = "How can we help?"
)

var presetGradients = []string{
	"linear-gradient(135deg, #6366f1 0%, #a855f7 100%)",
	"linear-gradient(135deg, #0ea5e9 0%, #22c55e 100%)",
	"linear-gradient(135deg, #f43f5e 0%, #fb923c 100%)",
	"linear-gradient(135deg, #1e293b 0%, #475569 100%)",
	"linear-gradient(135deg, #8b5cf6 0%, #ec4899 100%)",
	"linear-gradient(135deg, #f59e0b 0%, #ef4444 100%)",
}

var presetColors = []string{
	"#4f46e5", "#0ea5e9", "#10b981", "#f43f5e",
	"#8b5cf6", "#1e293b", "#ffffff", "#000000",
}

// PresetGradients returns the gradient palette offered by editors.
func PresetGradients() []string {
	return append([]string(nil), presetGradients...)
}

// PresetColors returns the solid color palette offered by editors.
func PresetColors() []string {
	return append([]string(nil), presetColors...)
}

// NewWidgetID returns a fresh opaque widget id.
func NewWidgetID() string {
	return "w-" + uuid.NewString()
}

// DefaultChannels returns one enabled channel per type.
func DefaultChannels() []ContactChannel {
	return []ContactChannel{
		{Type: ChannelTelegram, Label: "Telegram", Enabled: true, Placeholder: "username", IconMode: IconDefault},
		{Type: ChannelWhatsApp, Label: "WhatsApp", Enabled: true, Placeholder: "79001234567", IconMode: IconDefault},
		{Type: ChannelGmail, Label: "Gmail", Enabled: true, Placeholder: "yourname", IconMode: IconDefault},
		{Type: ChannelProton, Label: "Proton Mail", Enabled: true, Placeholder: "yourname", IconMode: IconDefault},
	}
}

// NewWidgetConfig builds a widget with the stock defaults.
func NewWidgetConfig(id string, createdAt time.Time) WidgetConfig {
	radius := DefaultWidgetBorderRadius
	return WidgetConfig{
		ID:                 id,
		Name:               DefaultName,
		Title:              DefaultTitle,
		Description:        DefaultDescription,
		DescriptionRows:    DefaultDescriptionRows,
		Channels:           DefaultChannels(),
		ThemeColor:         DefaultThemeColor,
		ThemeGradient:      presetGradients[0],
		BackgroundType:     BackgroundSolid,
		PanelStyle:         PanelClassic,
		Position:           PositionBottomRight,
		CreatedAt:          createdAt.UnixMilli(),
		WidgetIconMode:     IconDefault,
		WidgetSize:         DefaultWidgetSize,
		WidgetOutlineColor: DefaultOutlineColor,
		WidgetBorderRadius: &radius,
		PanelWidth:         DefaultPanelWidth,
	}
}

// DefaultWidgetConfig builds a default widget with a fresh id.
func DefaultWidgetConfig() WidgetConfig {
	return NewWidgetConfig(NewWidgetID(), time.Now())
}

// ApplyDefaults fills zero-valued knobs with defaults. Copy fields are left
// alone so an intentionally empty title stays empty.
func ApplyDefaults(cfg WidgetConfig) WidgetConfig {
	out := cfg.Clone()
	if out.DescriptionRows == 0 {
		out.DescriptionRows = DefaultDescriptionRows
	}
	if out.ThemeColor == "" {
		out.ThemeColor = DefaultThemeColor
	}
	if out.ThemeGradient == "" {
		out.ThemeGradient = presetGradients[0]
	}
	if out.BackgroundType == "" {
		out.BackgroundType = BackgroundSolid
	}
	if out.PanelStyle == "" {
		out.PanelStyle = PanelClassic
	}
	if out.Position == "" {
		out.Position = PositionBottomRight
	}
	if out.WidgetIconMode == "" {
		out.WidgetIconMode = IconDefault
	}
	if out.WidgetSize == 0 {
		out.WidgetSize = DefaultWidgetSize
	}
	if out.WidgetOutlineColor == "" {
		out.WidgetOutlineColor = DefaultOutlineColor
	}
	if out.PanelWidth == 0 {
		out.PanelWidth = DefaultPanelWidth
	}
	for i := range out.Channels {
		if out.Channels[i].IconMode == "" {
			out.Channels[i].IconMode = IconDefault
		}
	}
	return out
}
