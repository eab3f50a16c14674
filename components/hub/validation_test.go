package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(testWidget()))
	assert.NoError(t, ValidateConfig(DefaultWidgetConfig()))
}

func TestValidateConfigRejects(t *testing.T) {
	cases := map[string]func(*WidgetConfig){
		"missing id":        func(c *WidgetConfig) { c.ID = "" },
		"missing name":      func(c *WidgetConfig) { c.Name = "" },
		"rows":              func(c *WidgetConfig) { c.DescriptionRows = 9 },
		"duplicate channel": func(c *WidgetConfig) { c.Channels = append(c.Channels, c.Channels[0]) },
		"unknown channel":   func(c *WidgetConfig) { c.Channels[0].Type = "fax" },
		"panel style":       func(c *WidgetConfig) { c.PanelStyle = "neon" },
		"position":          func(c *WidgetConfig) { c.Position = "top-left" },
		"icon url":          func(c *WidgetConfig) { c.CustomWidgetIconURL = "https://example.com/a.png" },
		"channel icon url":  func(c *WidgetConfig) { c.Channels[1].CustomIconURL = "javascript:alert(1)" },
		"negative size":     func(c *WidgetConfig) { c.WidgetSize = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testWidget()
			mutate(&cfg)
			err := ValidateConfig(cfg)
			assert.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, 400, StatusCode(err))
		})
	}
}
