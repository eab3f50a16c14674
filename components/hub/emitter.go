package hub

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultIconsURL     = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css"
	DefaultUtilitiesURL = "https://cdn.tailwindcss.com"
)

var defaultDelays = map[EmitMode]time.Duration{
	ModeEmbed:   500 * time.Millisecond,
	ModePreview: 50 * time.Millisecond,
}

// EmitterConfig configures an Emitter. Delays maps a mode to the pause before
// first paint; modes missing from the map use the defaults.
type EmitterConfig struct {
	Renderer      Renderer
	Cache         RenderCache
	Delays        map[EmitMode]time.Duration
	SimulateDelay time.Duration
	Endpoint      string
	IconsURL      string
	UtilitiesURL  string
}

// Emitter turns a WidgetConfig into a self-contained script.
type Emitter struct {
	renderer      Renderer
	cache         RenderCache
	delays        map[EmitMode]time.Duration
	simulateDelay time.Duration
	endpoint      string
	assets        RuntimeAssets
}

// RuntimeAssets are the stylesheet and script injected by emitted widgets when
// the host page does not already load them.
type RuntimeAssets struct {
	Icons     string `json:"icons"`
	Utilities string `json:"utilities"`
}

// RuntimeTables is everything the emitted runtime interprets instead of
// hard coding: channel capabilities, panel transitions and copy.
type RuntimeTables struct {
	Capabilities map[ChannelType]Capability `json:"capabilities"`
	Transitions  []Transition               `json:"transitions"`
	Copy         PanelCopy                  `json:"copy"`
	Notification NotificationFormat         `json:"notification"`
	Blank        string                     `json:"blank"`
}

// NewRuntimeTables returns the tables shipped with every script.
func NewRuntimeTables() RuntimeTables {
	return RuntimeTables{
		Capabilities: Capabilities(),
		Transitions:  Transitions(),
		Copy:         DefaultPanelCopy(),
		Notification: DefaultNotificationFormat(),
		Blank:        BlankChars,
	}
}

type scriptOptions struct {
	Payload       string        `json:"payload"`
	Style         ResolvedStyle `json:"style"`
	Tables        RuntimeTables `json:"tables"`
	Assets        RuntimeAssets `json:"assets"`
	Mode          EmitMode      `json:"mode"`
	Delay         int64         `json:"delay"`
	SimulateDelay int64         `json:"simulateDelay"`
	Endpoint      string        `json:"endpoint"`
}

// NewEmitter builds an emitter, creating the embedded template renderer when
// none is supplied.
func NewEmitter(cfg EmitterConfig) (*Emitter, error) {
	renderer := cfg.Renderer
	if renderer == nil {
		var err error
		renderer, err = NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("hub: template renderer: %w", err)
		}
	}
	delays := make(map[EmitMode]time.Duration, len(defaultDelays))
	for mode, delay := range defaultDelays {
		delays[mode] = delay
	}
	for mode, delay := range cfg.Delays {
		if delay < 0 {
			delay = 0
		}
		delays[mode] = delay
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultTelegramEndpoint
	}
	assets := RuntimeAssets{Icons: cfg.IconsURL, Utilities: cfg.UtilitiesURL}
	if assets.Icons == "" {
		assets.Icons = DefaultIconsURL
	}
	if assets.Utilities == "" {
		assets.Utilities = DefaultUtilitiesURL
	}
	simulate := cfg.SimulateDelay
	if simulate <= 0 {
		simulate = 800 * time.Millisecond
	}
	return &Emitter{
		renderer:      renderer,
		cache:         cfg.Cache,
		delays:        delays,
		simulateDelay: simulate,
		endpoint:      endpoint,
		assets:        assets,
	}, nil
}

// Emit renders the self-executing script for cfg. The config is only read.
func (e *Emitter) Emit(cfg WidgetConfig, mode EmitMode) (string, error) {
	if mode != ModeEmbed && mode != ModePreview {
		return "", newValidationError("mode", fmt.Sprintf("unknown emit mode %q", mode), nil)
	}
	if e.cache == nil {
		return e.render(cfg, mode)
	}
	key := configHash(cfg) + ":" + string(mode)
	return e.cache.GetOrRender(key, func() (string, error) {
		return e.render(cfg, mode)
	})
}

func (e *Emitter) render(cfg WidgetConfig, mode EmitMode) (string, error) {
	payload, err := EncodeConfig(cfg)
	if err != nil {
		return "", err
	}
	options, err := scriptJSON(scriptOptions{
		Payload:       payload,
		Style:         Resolve(cfg),
		Tables:        NewRuntimeTables(),
		Assets:        e.assets,
		Mode:          mode,
		Delay:         e.delays[mode].Milliseconds(),
		SimulateDelay: e.simulateDelay.Milliseconds(),
		Endpoint:      e.endpoint,
	})
	if err != nil {
		return "", fmt.Errorf("hub: encode script options: %w", err)
	}
	out, err := e.renderer.Render("script.tpl", map[string]any{
		"mode":    string(mode),
		"options": options,
		"core":    coreSource,
		"mount":   mountSource,
	})
	if err != nil {
		return "", fmt.Errorf("hub: render script: %w", err)
	}
	return out, nil
}

// EmbedSnippet wraps the embed script in a script element ready to paste
// into a page.
func (e *Emitter) EmbedSnippet(cfg WidgetConfig) (string, error) {
	script, err := e.Emit(cfg, ModeEmbed)
	if err != nil {
		return "", err
	}
	return "<script>\n" + script + "\n</script>", nil
}

// DemoHTML renders a standalone page hosting the preview script.
func (e *Emitter) DemoHTML(cfg WidgetConfig) (string, error) {
	script, err := e.Emit(cfg, ModePreview)
	if err != nil {
		return "", err
	}
	out, err := e.renderer.Render("demo.tpl", map[string]any{
		"name":        cfg.Name,
		"title":       cfg.Title,
		"description": cfg.Description,
		"css_vars":    Resolve(cfg).CSSVariablesInline(),
		"script":      script,
	})
	if err != nil {
		return "", fmt.Errorf("hub: render demo: %w", err)
	}
	return out, nil
}
