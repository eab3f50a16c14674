package hub

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWidget() WidgetConfig {
	return NewWidgetConfig("w-test", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestPresetTables(t *testing.T) {
	shadow := "0 20px 25px -5px rgba(0,0,0,0.2), 0 8px 10px -6px rgba(0,0,0,0.2)"
	want := map[PanelStyle]PresetStyle{
		PanelClassic: {
			PanelBackground:         "bg-white border-slate-100",
			HeaderBackground:        "theme",
			HeaderTextColor:         "text-white",
			BodyTextColor:           "text-slate-600",
			TitleTextStyle:          "text-white font-extrabold",
			CloseButtonStyle:        "bg-white/20 text-white hover:bg-white/30",
			CardStyle:               "bg-slate-50 border-slate-100 hover:bg-indigo-50",
			BodyContainerBackground: "#f8fafc",
			PanelBorderRadius:       "2rem",
			TriggerShadow:           shadow,
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
			PanelBorderRadius:       "2rem",
			TriggerShadow:           shadow,
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
			PanelBorderRadius:       "2rem",
			TriggerShadow:           shadow,
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
			PanelBorderRadius:       "2rem",
			TriggerShadow:           shadow,
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
			TriggerShadow:           "6px 6px 0px 0px rgba(0,0,0,1)",
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
			PanelBorderRadius:       "2rem",
			TriggerShadow:           shadow,
		},
	}
	require.Len(t, want, len(PanelStyles()))
	for _, style := range PanelStyles() {
		t.Run(string(style), func(t *testing.T) {
			preset, ok := PresetTable(style)
			require.True(t, ok)
			assert.Equal(t, want[style], preset)
		})
	}
}

func TestResolveDarkPreset(t *testing.T) {
	cfg := testWidget()
	cfg.PanelStyle = PanelDark

	style := Resolve(cfg)
	assert.Equal(t, PanelDark, style.PanelStyle)
	assert.Equal(t, "bg-slate-900 border-slate-800 shadow-2xl shadow-black/50", style.PanelBackground)
	assert.Equal(t, "transparent", style.HeaderBackground)
	assert.Equal(t, "1px solid #334155", style.HeaderBorderBottom)
	assert.Equal(t, "text-slate-400", style.HeaderTextColor)
	assert.Equal(t, "text-slate-400", style.BodyTextColor)
	assert.Equal(t, "text-white font-black uppercase", style.TitleTextStyle)
	assert.Equal(t, "bg-slate-800 text-slate-400 hover:bg-slate-700 hover:text-white", style.CloseButtonStyle)
	assert.Equal(t, "bg-slate-800/50 border-slate-700 hover:bg-slate-800 hover:border-indigo-500/50", style.CardStyle)
	assert.Equal(t, "#0f172a", style.BodyContainerBackground)
	assert.Equal(t, "2rem", style.PanelBorderRadius)
	assert.Equal(t, "text-white", style.CardLabelClass)
	assert.Equal(t, "#4f46e5", style.ThemeBackground)
	assert.Empty(t, style.HeaderTextStyle)
}

func TestResolveWhiteSolidThemeUsesLightVariant(t *testing.T) {
	cfg := testWidget()
	cfg.BackgroundType = BackgroundSolid
	cfg.ThemeColor = "#ffffff"

	style := Resolve(cfg)
	assert.True(t, style.IsBackgroundWhite)
	assert.Equal(t, "#000000", style.TriggerIconColor)
	assert.Equal(t, "text-slate-500", style.HeaderTextColor)
	assert.Equal(t, "text-slate-900 font-extrabold", style.TitleTextStyle)
	assert.Equal(t, "bg-slate-100 text-slate-400 hover:bg-slate-200", style.CloseButtonStyle)
	assert.Equal(t, "1px solid #e2e8f0", style.TriggerBorder)
	assert.Equal(t, "#ffffff", style.HeaderBackground)
	assert.Equal(t, "bg-white border-slate-100", style.PanelBackground)
	assert.Equal(t, "text-slate-600", style.BodyTextColor)
	assert.Equal(t, "bg-slate-50 border-slate-100 hover:bg-indigo-50", style.CardStyle)
	assert.Equal(t, "#f8fafc", style.BodyContainerBackground)
}

func TestResolveGradientIsNeverWhite(t *testing.T) {
	cfg := testWidget()
	cfg.ThemeColor = "#ffffff"
	cfg.BackgroundType = BackgroundGradient

	style := Resolve(cfg)
	assert.False(t, style.IsBackgroundWhite)
	assert.Equal(t, "#ffffff", style.TriggerIconColor)
	assert.Equal(t, cfg.ThemeGradient, style.ThemeBackground)
	assert.Equal(t, cfg.ThemeGradient, style.HeaderBackground)
}

func TestResolveIsDeterministic(t *testing.T) {
	cfg := testWidget()
	cfg.PanelStyle = PanelOcean
	cfg.HeaderTextOverride = "#123456"
	for i := 0; i < 5; i++ {
		assert.Equal(t, Resolve(cfg), Resolve(cfg.Clone()))
	}
}

func TestResolveOverridesWin(t *testing.T) {
	cfg := testWidget()
	cfg.PanelStyle = PanelDark
	cfg.HeaderBgOverride = "#ff0000"
	cfg.HeaderTextOverride = "#00ff00"
	cfg.BodyBgOverride = "#0000ff"
	cfg.CardBgOverride = "#eeeeee"
	cfg.CardTextOverride = "#111111"

	style := Resolve(cfg)
	assert.Equal(t, "#ff0000", style.HeaderBackground)
	assert.Empty(t, style.HeaderTextColor)
	assert.Equal(t, "color: #00ff00; opacity: 1;", style.HeaderTextStyle)
	assert.Equal(t, "color: #00ff00; opacity: 0.8;", style.DescriptionTextStyle)
	assert.Equal(t, "#0000ff", style.BodyContainerBackground)
	assert.Equal(t, "background-color: #eeeeee;", style.CardItemStyle)
	assert.Equal(t, "color: #111111;", style.CardLabelStyle)
	assert.Equal(t, "1px solid #334155", style.HeaderBorderBottom)
}

func TestResolveTrigger(t *testing.T) {
	cfg := testWidget()
	cfg.WidgetBorderRadius = nil
	cfg.WidgetSize = 65

	style := Resolve(cfg)
	assert.Equal(t, "25px", style.TriggerRadius)
	assert.Equal(t, 24, style.TriggerIconSize)
	assert.Equal(t, "none", style.TriggerBorder)

	radius := 8
	cfg.WidgetBorderRadius = &radius
	cfg.WidgetOutlineWidth = 2
	cfg.WidgetOutlineColor = "#ff00ff"
	style = Resolve(cfg)
	assert.Equal(t, "8px", style.TriggerRadius)
	assert.Equal(t, "2px solid #ff00ff", style.TriggerBorder)

	cfg.PanelStyle = PanelBrutalist
	style = Resolve(cfg)
	assert.Equal(t, "0px", style.TriggerRadius)
	assert.Equal(t, "3px solid black", style.TriggerBorder)
	assert.Equal(t, "0", style.PanelBorderRadius)
}

func TestResolveUnknownPresetFallsBackToClassic(t *testing.T) {
	cfg := testWidget()
	cfg.PanelStyle = "neon"
	style := Resolve(cfg)
	assert.Equal(t, PanelClassic, style.PanelStyle)
	assert.Equal(t, cfg.ThemeColor, style.HeaderBackground)
}

func TestCSSVariablesInlineIsSorted(t *testing.T) {
	style := Resolve(testWidget())
	inline := style.CSSVariablesInline()
	assert.True(t, strings.HasPrefix(inline, "--hub-body: #f8fafc;"), inline)
	assert.Contains(t, inline, "--hub-panel-width: 340px;")
	assert.Contains(t, inline, "--hub-theme: #4f46e5;")
}
