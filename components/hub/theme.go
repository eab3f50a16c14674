package hub

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	defaultPanelRadius   = "2rem"
	defaultTriggerShadow = "0 20px 25px -5px rgba(0,0,0,0.2), 0 8px 10px -6px rgba(0,0,0,0.2)"
	brutalistBorder      = "3px solid black"
	brutalistShadow      = "6px 6px 0px 0px rgba(0,0,0,1)"
	whiteTriggerBorder   = "1px solid #e2e8f0"
	themeBackgroundToken = "theme"

	// trigger glyphs are 24px on the 64px reference button.
	triggerIconRatio = 24.0 / 64.0
)

// PresetStyle is the fixed set of values a panel preset owns. A
// HeaderBackground of "theme" means the widget theme background.
type PresetStyle struct {
	PanelBackground         string `json:"panelBackground"`
	HeaderBackground        string `json:"headerBackground"`
	HeaderBorderBottom      string `json:"headerBorderBottom"`
	HeaderTextColor         string `json:"headerTextColor"`
	BodyTextColor           string `json:"bodyTextColor"`
	TitleTextStyle          string `json:"titleTextStyle"`
	CloseButtonStyle        string `json:"closeButtonStyle"`
	CardStyle               string `json:"cardStyle"`
	BodyContainerBackground string `json:"bodyContainerBackground"`
	PanelBorderRadius       string `json:"panelBorderRadius"`
	TriggerShadow           string `json:"triggerShadow"`
}

// presetChrome styles the secondary elements (inputs, headings, buttons) of
// each preset so emitted scripts never branch on preset names.
type presetChrome struct {
	CardLabel    string
	Input        string
	StepTitle    string
	BackButton   string
	Muted        string
	SuccessTitle string
	SendAnother  string
}

var presetTable = map[PanelStyle]PresetStyle{
	PanelClassic: {
		PanelBackground:         "bg-white border-slate-100",
		HeaderBackground:        themeBackgroundToken,
		HeaderTextColor:         "text-white",
		BodyTextColor:           "text-slate-600",
		TitleTextStyle:          "text-white font-extrabold",
		CloseButtonStyle:        "bg-white/20 text-white hover:bg-white/30",
		CardStyle:               "bg-slate-50 border-slate-100 hover:bg-indigo-50",
		BodyContainerBackground: "#f8fafc",
		PanelBorderRadius:       defaultPanelRadius,
		TriggerShadow:           defaultTriggerShadow,
	},
	PanelMonochrome: {
		PanelBackground:         "bg-white border-slate-200",
		HeaderBackground:        "#1e293b",
		HeaderTextColor:         "text-slate-300",
		BodyTextColor:           "text-slate-600",
		TitleTextStyle:          "text-white font-black uppercase tracking-tight",
		CloseButtonStyle:        "bg-slate-800 text-slate-400 hover:text-white",
		CardStyle:               "bg-white border-slate-200 hover:border-slate-900 grayscale transition-all",
		BodyContainerBackground: "#f8fafc",
		PanelBorderRadius:       defaultPanelRadius,
		TriggerShadow:           defaultTriggerShadow,
	},
	PanelGlass: {
		PanelBackground:         "bg-white/70 backdrop-blur-xl border-white/40 shadow-2xl",
		HeaderBackground:        "transparent",
		HeaderTextColor:         "text-slate-600",
		BodyTextColor:           "text-slate-700",
		TitleTextStyle:          "text-slate-900 font-black",
		CloseButtonStyle:        "bg-black/5 text-slate-500 hover:bg-black/10",
		CardStyle:               "bg-white/40 border-white/60 hover:bg-white/80 backdrop-blur-sm",
		BodyContainerBackground: "transparent",
		PanelBorderRadius:       defaultPanelRadius,
		TriggerShadow:           defaultTriggerShadow,
	},
	PanelDark: {
		PanelBackground:         "bg-slate-900 border-slate-800 shadow-2xl shadow-black/50",
		HeaderBackground:        "transparent",
		HeaderBorderBottom:      "1px solid #334155",
		HeaderTextColor:         "text-slate-400",
		BodyTextColor:           "text-slate-400",
		TitleTextStyle:          "text-white font-black uppercase",
		CloseButtonStyle:        "bg-slate-800 text-slate-400 hover:bg-slate-700 hover:text-white",
		CardStyle:               "bg-slate-800/50 border-slate-700 hover:bg-slate-800 hover:border-indigo-500/50",
		BodyContainerBackground: "#0f172a",
		PanelBorderRadius:       defaultPanelRadius,
		TriggerShadow:           defaultTriggerShadow,
	},
	PanelBrutalist: {
		PanelBackground:         "bg-white border-[4px] border-black shadow-[12px_12px_0px_0px_rgba(0,0,0,1)]",
		HeaderBackground:        "#facc15",
		HeaderBorderBottom:      "4px solid black",
		HeaderTextColor:         "text-black",
		BodyTextColor:           "text-black",
		TitleTextStyle:          "text-black font-black uppercase italic text-2xl",
		CloseButtonStyle:        "bg-black text-white hover:bg-black/80",
		CardStyle:               "bg-white border-[3px] border-black hover:bg-indigo-400 hover:-translate-y-1 hover:-translate-x-1 hover:shadow-[6px_6px_0px_0px_rgba(0,0,0,1)] transition-all",
		BodyContainerBackground: "#ffffff",
		PanelBorderRadius:       "0",
		TriggerShadow:           brutalistShadow,
	},
	PanelOcean: {
		PanelBackground:         "bg-sky-50 border-sky-100 shadow-2xl shadow-sky-900/20",
		HeaderBackground:        "linear-gradient(135deg, #075985 0%, #0369a1 100%)",
		HeaderTextColor:         "text-sky-100",
		BodyTextColor:           "text-sky-800",
		TitleTextStyle:          "text-white font-black tracking-widest uppercase",
		CloseButtonStyle:        "bg-white/10 text-white hover:bg-white/20",
		CardStyle:               "bg-white border-sky-100 hover:border-sky-300 shadow-sm hover:shadow-sky-100 transition-all",
		BodyContainerBackground: "#f0f9ff",
		PanelBorderRadius:       defaultPanelRadius,
		TriggerShadow:           defaultTriggerShadow,
	},
}

// classic on a white theme swaps to the light header treatment.
var classicLight = struct {
	HeaderTextColor  string
	TitleTextStyle   string
	CloseButtonStyle string
}{
	HeaderTextColor:  "text-slate-500",
	TitleTextStyle:   "text-slate-900 font-extrabold",
	CloseButtonStyle: "bg-slate-100 text-slate-400 hover:bg-slate-200",
}

var defaultChrome = presetChrome{
	CardLabel:    "text-slate-800",
	Input:        "bg-white border-slate-200 text-slate-900 placeholder-slate-400 focus:border-indigo-500",
	StepTitle:    "text-slate-900",
	BackButton:   "text-slate-400 hover:text-slate-700",
	Muted:        "text-slate-500",
	SuccessTitle: "text-slate-900",
	SendAnother:  "text-indigo-600 hover:text-indigo-800",
}

var chromeTable = map[PanelStyle]presetChrome{
	PanelDark: {
		CardLabel:    "text-white",
		Input:        "bg-slate-800 border-slate-700 text-white placeholder-slate-500 focus:border-indigo-500",
		StepTitle:    "text-white",
		BackButton:   "text-slate-500 hover:text-white",
		Muted:        "text-slate-400",
		SuccessTitle: "text-white",
		SendAnother:  "text-indigo-400 hover:text-indigo-300",
	},
	PanelBrutalist: {
		CardLabel:    "text-black uppercase",
		Input:        "bg-white border-[3px] border-black text-black placeholder-black/40 rounded-none",
		StepTitle:    "text-black uppercase italic",
		BackButton:   "text-black hover:underline",
		Muted:        "text-black",
		SuccessTitle: "text-black uppercase italic",
		SendAnother:  "text-black underline",
	},
	PanelOcean: {
		CardLabel:    "text-sky-900",
		Input:        "bg-white border-sky-200 text-sky-900 placeholder-sky-300 focus:border-sky-500",
		StepTitle:    "text-sky-900",
		BackButton:   "text-sky-400 hover:text-sky-700",
		Muted:        "text-sky-700",
		SuccessTitle: "text-sky-900",
		SendAnother:  "text-sky-600 hover:text-sky-800",
	},
}

// PresetTable returns the fixed style table of a preset.
func PresetTable(style PanelStyle) (PresetStyle, bool) {
	preset, ok := presetTable[style]
	return preset, ok
}

// ResolvedStyle is the computed visual state of a widget. Class fields hold
// utility classes; the remaining string fields hold CSS values.
type ResolvedStyle struct {
	PanelStyle              PanelStyle `json:"panelStyle"`
	IsBackgroundWhite       bool       `json:"isBackgroundWhite"`
	ThemeBackground         string     `json:"themeBackground"`
	PanelBackground         string     `json:"panelBackground"`
	HeaderBackground        string     `json:"headerBackground"`
	HeaderBorderBottom      string     `json:"headerBorderBottom"`
	HeaderTextColor         string     `json:"headerTextColor"`
	HeaderTextStyle         string     `json:"headerTextStyle"`
	DescriptionTextStyle    string     `json:"descriptionTextStyle"`
	BodyTextColor           string     `json:"bodyTextColor"`
	TitleTextStyle          string     `json:"titleTextStyle"`
	CloseButtonStyle        string     `json:"closeButtonStyle"`
	CardStyle               string     `json:"cardStyle"`
	CardItemStyle           string     `json:"cardItemStyle"`
	CardLabelStyle          string     `json:"cardLabelStyle"`
	CardLabelClass          string     `json:"cardLabelClass"`
	BodyContainerBackground string     `json:"bodyContainerBackground"`
	PanelBorderRadius       string     `json:"panelBorderRadius"`
	PanelWidth              int        `json:"panelWidth"`
	DescriptionRows         int        `json:"descriptionRows"`
	TriggerIconColor        string     `json:"triggerIconColor"`
	TriggerBorder           string     `json:"triggerBorder"`
	TriggerShadow           string     `json:"triggerShadow"`
	TriggerRadius           string     `json:"triggerRadius"`
	TriggerSize             int        `json:"triggerSize"`
	TriggerIconSize         int        `json:"triggerIconSize"`
	InputStyle              string     `json:"inputStyle"`
	StepTitleStyle          string     `json:"stepTitleStyle"`
	BackButtonStyle         string     `json:"backButtonStyle"`
	MutedTextStyle          string     `json:"mutedTextStyle"`
	SuccessTitleStyle       string     `json:"successTitleStyle"`
	SendAnotherStyle        string     `json:"sendAnotherStyle"`
	Position                Position   `json:"position"`
}

// IsWhiteBackground reports whether the widget uses a plain white solid theme.
func IsWhiteBackground(cfg WidgetConfig) bool {
	if cfg.BackgroundType == BackgroundGradient {
		return false
	}
	color := strings.ToLower(strings.TrimSpace(cfg.ThemeColor))
	return color == "#ffffff" || color == "white"
}

// ThemeBackground returns the CSS background of the theme: the gradient when
// selected, otherwise the solid color.
func ThemeBackground(cfg WidgetConfig) string {
	if cfg.BackgroundType == BackgroundGradient && cfg.ThemeGradient != "" {
		return cfg.ThemeGradient
	}
	if cfg.ThemeColor == "" {
		return DefaultThemeColor
	}
	return cfg.ThemeColor
}

// Resolve computes the style of cfg. It is pure: equal configs always produce
// equal styles.
func Resolve(cfg WidgetConfig) ResolvedStyle {
	white := IsWhiteBackground(cfg)
	theme := ThemeBackground(cfg)

	style := cfg.PanelStyle
	preset, ok := presetTable[style]
	if !ok {
		style = PanelClassic
		preset = presetTable[PanelClassic]
	}
	if style == PanelClassic && white {
		preset.HeaderTextColor = classicLight.HeaderTextColor
		preset.TitleTextStyle = classicLight.TitleTextStyle
		preset.CloseButtonStyle = classicLight.CloseButtonStyle
	}
	if preset.HeaderBackground == themeBackgroundToken {
		preset.HeaderBackground = theme
	}
	chrome, ok := chromeTable[style]
	if !ok {
		chrome = defaultChrome
	}

	out := ResolvedStyle{
		PanelStyle:              style,
		IsBackgroundWhite:       white,
		ThemeBackground:         theme,
		PanelBackground:         preset.PanelBackground,
		HeaderBackground:        preset.HeaderBackground,
		HeaderBorderBottom:      preset.HeaderBorderBottom,
		HeaderTextColor:         preset.HeaderTextColor,
		BodyTextColor:           preset.BodyTextColor,
		TitleTextStyle:          preset.TitleTextStyle,
		CloseButtonStyle:        preset.CloseButtonStyle,
		CardStyle:               preset.CardStyle,
		CardLabelClass:          chrome.CardLabel,
		BodyContainerBackground: preset.BodyContainerBackground,
		PanelBorderRadius:       preset.PanelBorderRadius,
		PanelWidth:              positiveOr(cfg.PanelWidth, DefaultPanelWidth),
		DescriptionRows:         clampRows(cfg.DescriptionRows),
		TriggerShadow:           preset.TriggerShadow,
		InputStyle:              chrome.Input,
		StepTitleStyle:          chrome.StepTitle,
		BackButtonStyle:         chrome.BackButton,
		MutedTextStyle:          chrome.Muted,
		SuccessTitleStyle:       chrome.SuccessTitle,
		SendAnotherStyle:        chrome.SendAnother,
		Position:                cfg.Position,
	}
	if out.Position == "" {
		out.Position = PositionBottomRight
	}

	if cfg.HeaderBgOverride != "" {
		out.HeaderBackground = cfg.HeaderBgOverride
	}
	if cfg.HeaderTextOverride != "" {
		out.HeaderTextColor = ""
		out.HeaderTextStyle = fmt.Sprintf("color: %s; opacity: 1;", cfg.HeaderTextOverride)
		out.DescriptionTextStyle = fmt.Sprintf("color: %s; opacity: 0.8;", cfg.HeaderTextOverride)
	}
	if cfg.BodyBgOverride != "" {
		out.BodyContainerBackground = cfg.BodyBgOverride
	}
	if cfg.CardBgOverride != "" {
		out.CardItemStyle = fmt.Sprintf("background-color: %s;", cfg.CardBgOverride)
	}
	if cfg.CardTextOverride != "" {
		out.CardLabelStyle = fmt.Sprintf("color: %s;", cfg.CardTextOverride)
	}

	out.TriggerIconColor = "#ffffff"
	if white {
		out.TriggerIconColor = "#000000"
	}
	switch {
	case style == PanelBrutalist:
		out.TriggerBorder = brutalistBorder
	case cfg.WidgetOutlineWidth > 0:
		color := cfg.WidgetOutlineColor
		if color == "" {
			color = DefaultOutlineColor
		}
		out.TriggerBorder = fmt.Sprintf("%dpx solid %s", cfg.WidgetOutlineWidth, color)
	case white:
		out.TriggerBorder = whiteTriggerBorder
	default:
		out.TriggerBorder = "none"
	}

	size := positiveOr(cfg.WidgetSize, DefaultWidgetSize)
	out.TriggerSize = size
	out.TriggerIconSize = int(math.Round(float64(size) * triggerIconRatio))
	switch {
	case style == PanelBrutalist:
		out.TriggerRadius = "0px"
	case cfg.WidgetBorderRadius != nil:
		out.TriggerRadius = fmt.Sprintf("%dpx", *cfg.WidgetBorderRadius)
	default:
		out.TriggerRadius = fmt.Sprintf("%dpx", int(math.Round(float64(size)/2.6)))
	}
	return out
}

// CSSVariables exposes the resolved colors as custom properties so host pages
// can theme around the widget.
func (s ResolvedStyle) CSSVariables() map[string]string {
	tokens := map[string]string{
		"hub-theme":          s.ThemeBackground,
		"hub-header":         s.HeaderBackground,
		"hub-body":           s.BodyContainerBackground,
		"hub-trigger-icon":   s.TriggerIconColor,
		"hub-trigger-border": s.TriggerBorder,
		"hub-panel-radius":   s.PanelBorderRadius,
		"hub-panel-width":    fmt.Sprintf("%dpx", s.PanelWidth),
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := normalizeCSSVariable(key)
		if name == "" || value == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders CSSVariables as a style attribute value with a
// stable key order.
func (s ResolvedStyle) CSSVariablesInline() string {
	vars := s.CSSVariables()
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func clampRows(rows int) int {
	switch {
	case rows <= 0:
		return DefaultDescriptionRows
	case rows > 5:
		return 5
	default:
		return rows
	}
}
