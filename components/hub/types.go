package hub

import "context"

// ChannelType identifies a contact method offered to visitors. The set is closed.
type ChannelType string

const (
	ChannelTelegram ChannelType = "telegram"
	ChannelWhatsApp ChannelType = "whatsapp"
	ChannelGmail    ChannelType = "gmail"
	ChannelProton   ChannelType = "proton"
)

// ChannelTypes lists every supported channel in display order.
func ChannelTypes() []ChannelType {
	return []ChannelType{ChannelTelegram, ChannelWhatsApp, ChannelGmail, ChannelProton}
}

// Valid reports whether t belongs to the closed channel set.
func (t ChannelType) Valid() bool {
	_, ok := capabilityTable[t]
	return ok
}

// PanelStyle names one of the visual presets.
type PanelStyle string

const (
	PanelClassic    PanelStyle = "classic"
	PanelMonochrome PanelStyle = "monochrome"
	PanelGlass      PanelStyle = "glass"
	PanelDark       PanelStyle = "dark"
	PanelBrutalist  PanelStyle = "brutalist"
	PanelOcean      PanelStyle = "ocean"
)

// PanelStyles lists every preset.
func PanelStyles() []PanelStyle {
	return []PanelStyle{PanelClassic, PanelMonochrome, PanelGlass, PanelDark, PanelBrutalist, PanelOcean}
}

// BackgroundType selects between the solid theme color and the gradient.
type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
)

// IconMode selects the stock icon or an uploaded data URI.
type IconMode string

const (
	IconDefault IconMode = "default"
	IconCustom  IconMode = "custom"
)

// Position anchors the trigger to a corner of the viewport.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
)

// EmitMode selects how an emitted script is delivered.
type EmitMode string

const (
	ModeEmbed   EmitMode = "embed"
	ModePreview EmitMode = "preview"
)

// ContactChannel is one contact method in a widget.
type ContactChannel struct {
	Type          ChannelType `json:"type" yaml:"type"`
	Label         string      `json:"label" yaml:"label"`
	Enabled       bool        `json:"enabled" yaml:"enabled"`
	Placeholder   string      `json:"placeholder" yaml:"placeholder"`
	IconMode      IconMode    `json:"iconMode,omitempty" yaml:"icon_mode,omitempty"`
	CustomIconURL string      `json:"customIconUrl,omitempty" yaml:"custom_icon_url,omitempty"`
}

// UsesCustomIcon reports whether the channel renders its uploaded icon.
func (c ContactChannel) UsesCustomIcon() bool {
	return c.IconMode == IconCustom && c.CustomIconURL != ""
}

// WidgetConfig is the full configuration of one embeddable widget. The JSON
// form is both the project interchange format and the payload embedded into
// emitted scripts.
type WidgetConfig struct {
	ID                  string           `json:"id" yaml:"id"`
	Name                string           `json:"name" yaml:"name"`
	Title               string           `json:"title" yaml:"title"`
	Description         string           `json:"description" yaml:"description"`
	DescriptionRows     int              `json:"descriptionRows,omitempty" yaml:"description_rows,omitempty"`
	Channels            []ContactChannel `json:"channels" yaml:"channels"`
	ThemeColor          string           `json:"themeColor" yaml:"theme_color"`
	ThemeGradient       string           `json:"themeGradient,omitempty" yaml:"theme_gradient,omitempty"`
	BackgroundType      BackgroundType   `json:"backgroundType,omitempty" yaml:"background_type,omitempty"`
	PanelStyle          PanelStyle       `json:"panelStyle,omitempty" yaml:"panel_style,omitempty"`
	Position            Position         `json:"position,omitempty" yaml:"position,omitempty"`
	CreatedAt           int64            `json:"createdAt" yaml:"created_at"`
	BotToken            string           `json:"botToken,omitempty" yaml:"bot_token,omitempty"`
	ChatID              string           `json:"chatId,omitempty" yaml:"chat_id,omitempty"`
	WidgetIconMode      IconMode         `json:"widgetIconMode,omitempty" yaml:"widget_icon_mode,omitempty"`
	CustomWidgetIconURL string           `json:"customWidgetIconUrl,omitempty" yaml:"custom_widget_icon_url,omitempty"`
	WidgetSize          int              `json:"widgetSize,omitempty" yaml:"widget_size,omitempty"`
	WidgetOutlineWidth  int              `json:"widgetOutlineWidth,omitempty" yaml:"widget_outline_width,omitempty"`
	WidgetOutlineColor  string           `json:"widgetOutlineColor,omitempty" yaml:"widget_outline_color,omitempty"`
	WidgetBorderRadius  *int             `json:"widgetBorderRadius,omitempty" yaml:"widget_border_radius,omitempty"`
	PanelWidth          int              `json:"panelWidth,omitempty" yaml:"panel_width,omitempty"`
	HeaderBgOverride    string           `json:"headerBgOverride,omitempty" yaml:"header_bg_override,omitempty"`
	HeaderTextOverride  string           `json:"headerTextOverride,omitempty" yaml:"header_text_override,omitempty"`
	BodyBgOverride      string           `json:"bodyBgOverride,omitempty" yaml:"body_bg_override,omitempty"`
	CardBgOverride      string           `json:"cardBgOverride,omitempty" yaml:"card_bg_override,omitempty"`
	CardTextOverride    string           `json:"cardTextOverride,omitempty" yaml:"card_text_override,omitempty"`
	ShowMessageField    *bool            `json:"showMessageField,omitempty" yaml:"show_message_field,omitempty"`
	MessagePlaceholder  string           `json:"messagePlaceholder,omitempty" yaml:"message_placeholder,omitempty"`
}

// HasCredentials reports whether both bot relay credentials are set.
func (c WidgetConfig) HasCredentials() bool {
	return TrimBlank(c.BotToken) != "" && TrimBlank(c.ChatID) != ""
}

// MessageRequired is true unless showMessageField is explicitly false.
func (c WidgetConfig) MessageRequired() bool {
	return c.ShowMessageField == nil || *c.ShowMessageField
}

// Channel returns the channel of the given type.
func (c WidgetConfig) Channel(t ChannelType) (ContactChannel, bool) {
	for _, ch := range c.Channels {
		if ch.Type == t {
			return ch, true
		}
	}
	return ContactChannel{}, false
}

// EnabledChannels returns enabled channels in configured order.
func (c WidgetConfig) EnabledChannels() []ContactChannel {
	out := make([]ContactChannel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		if ch.Enabled {
			out = append(out, ch)
		}
	}
	return out
}

// Clone returns a deep copy.
func (c WidgetConfig) Clone() WidgetConfig {
	out := c
	if c.Channels != nil {
		out.Channels = append([]ContactChannel(nil), c.Channels...)
	}
	if c.WidgetBorderRadius != nil {
		radius := *c.WidgetBorderRadius
		out.WidgetBorderRadius = &radius
	}
	if c.ShowMessageField != nil {
		show := *c.ShowMessageField
		out.ShowMessageField = &show
	}
	return out
}

// ChannelUpdate carries the mutable fields of a channel. Nil fields are left
// unchanged. The channel type itself can never be updated.
type ChannelUpdate struct {
	Label         *string   `json:"label,omitempty"`
	Enabled       *bool     `json:"enabled,omitempty"`
	Placeholder   *string   `json:"placeholder,omitempty"`
	IconMode      *IconMode `json:"iconMode,omitempty"`
	CustomIconURL *string   `json:"customIconUrl,omitempty"`
}

// Apply returns ch with the update applied.
func (u ChannelUpdate) Apply(ch ContactChannel) ContactChannel {
	if u.Label != nil {
		ch.Label = *u.Label
	}
	if u.Enabled != nil {
		ch.Enabled = *u.Enabled
	}
	if u.Placeholder != nil {
		ch.Placeholder = *u.Placeholder
	}
	if u.IconMode != nil {
		ch.IconMode = *u.IconMode
	}
	if u.CustomIconURL != nil {
		ch.CustomIconURL = *u.CustomIconURL
	}
	return ch
}

// WidgetStore loads and saves the full widget list. The storage medium is up
// to the application.
type WidgetStore interface {
	Load(ctx context.Context) ([]WidgetConfig, error)
	Save(ctx context.Context, widgets []WidgetConfig) error
}

// Suggestion is advisory copy produced by an optional assistant.
type Suggestion struct {
	Titles      []string `json:"titles"`
	Description string   `json:"description"`
}

// Suggester proposes titles and a description for a widget. A nil
// suggestion with a nil error means "no suggestion".
type Suggester interface {
	Suggest(ctx context.Context, description string) (*Suggestion, error)
}
