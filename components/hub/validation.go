package hub

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var dataURIPattern = regexp.MustCompile(`^data:[a-zA-Z0-9.+/-]+(;[a-zA-Z0-9=.+-]+)*(;base64)?,`)

// Validate checks the channel against the closed type set and icon rules.
func (c ContactChannel) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.Required, validation.By(func(value any) error {
			if t, _ := value.(ChannelType); !t.Valid() {
				return fmt.Errorf("unknown channel type %q", t)
			}
			return nil
		})),
		validation.Field(&c.IconMode, validation.In(IconDefault, IconCustom)),
		validation.Field(&c.CustomIconURL, validation.Match(dataURIPattern).Error("must be a data URI")),
	)
}

// ValidateConfig checks cfg against the model invariants. Zero valued knobs
// are accepted because ApplyDefaults fills them.
func ValidateConfig(cfg WidgetConfig) error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.ID, validation.Required),
		validation.Field(&cfg.Name, validation.Required),
		validation.Field(&cfg.DescriptionRows, validation.Min(1), validation.Max(5)),
		validation.Field(&cfg.Channels, validation.By(uniqueChannelTypes)),
		validation.Field(&cfg.BackgroundType, validation.In(BackgroundSolid, BackgroundGradient)),
		validation.Field(&cfg.PanelStyle, validation.In(PanelClassic, PanelMonochrome, PanelGlass, PanelDark, PanelBrutalist, PanelOcean)),
		validation.Field(&cfg.Position, validation.In(PositionBottomRight, PositionBottomLeft)),
		validation.Field(&cfg.WidgetIconMode, validation.In(IconDefault, IconCustom)),
		validation.Field(&cfg.CustomWidgetIconURL, validation.Match(dataURIPattern).Error("must be a data URI")),
		validation.Field(&cfg.WidgetSize, validation.Min(0)),
		validation.Field(&cfg.WidgetOutlineWidth, validation.Min(0)),
		validation.Field(&cfg.PanelWidth, validation.Min(0)),
	)
	if err != nil {
		return newValidationError("config", err.Error(), err)
	}
	return nil
}

func uniqueChannelTypes(value any) error {
	channels, _ := value.([]ContactChannel)
	seen := make(map[ChannelType]bool, len(channels))
	for _, ch := range channels {
		if seen[ch.Type] {
			return fmt.Errorf("duplicate channel type %q", ch.Type)
		}
		seen[ch.Type] = true
	}
	return nil
}

const projectSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "channels"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "channels": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string"},
          "label": {"type": "string"},
          "enabled": {"type": "boolean"}
        }
      }
    }
  }
}`

var (
	projectSchemaOnce     sync.Once
	projectSchemaCompiled *jsonschema.Schema
	projectSchemaErr      error
)

func compiledProjectSchema() (*jsonschema.Schema, error) {
	projectSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("project.json", strings.NewReader(projectSchema)); err != nil {
			projectSchemaErr = fmt.Errorf("hub: load project schema: %w", err)
			return
		}
		projectSchemaCompiled, projectSchemaErr = compiler.Compile("project.json")
		if projectSchemaErr != nil {
			projectSchemaErr = fmt.Errorf("hub: compile project schema: %w", projectSchemaErr)
		}
	})
	return projectSchemaCompiled, projectSchemaErr
}

// validateProjectDocument checks a decoded JSON document for the fields a
// project file must carry.
func validateProjectDocument(doc any) error {
	schema, err := compiledProjectSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		reason := "missing or malformed id, name or channels"
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) && len(verr.Causes) > 0 {
			reason = reason + ": " + verr.Causes[0].Message
		}
		return newValidationError("project", reason, err)
	}
	return nil
}
