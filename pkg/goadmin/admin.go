package goadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	activitypkg "github.com/goliatone/go-contact-hub/pkg/activity"
	hubpkg "github.com/goliatone/go-contact-hub/pkg/hub"
)

// MenuBuilder ensures hub entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures navigation link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Parent   string
	Position int
}

// Config wires the hub service into an admin shell.
type Config struct {
	EnableHub   bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Service     *hubpkg.Service
	// Options builds the service when Service is nil.
	Options         hubpkg.Options
	DefaultMenuItem MenuItem
	// ActivityHooks are added to Options. A zero ActivityConfig with hooks
	// present enables emission for every verb.
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
	// WidgetLinks adds one child entry per widget pointing at its demo page.
	WidgetLinks bool
	BasePath    string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed hub menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableHub && cfg.Service == nil {
		if cfg.Options.Store == nil {
			return nil, errors.New("goadmin: hub service or store is required when enabled")
		}
		cfg.Service = hubpkg.NewService(serviceOptions(cfg))
	} else if cfg.Service != nil && len(cfg.ActivityHooks) > 0 {
		return nil, errors.New("goadmin: activity hooks need Options, the service is already built")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Contact Widgets"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.hub"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "message-circle"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/hub"
	}
	return &Admin{cfg: cfg}, nil
}

func serviceOptions(cfg Config) hubpkg.Options {
	opts := cfg.Options
	if len(cfg.ActivityHooks) == 0 {
		return opts
	}
	opts.ActivityHooks = append(append(activitypkg.Hooks(nil), opts.ActivityHooks...), cfg.ActivityHooks...)
	activity := cfg.ActivityConfig
	if !activity.Enabled && activity.Channel == "" && len(activity.Verbs) == 0 {
		activity.Enabled = true
	}
	opts.ActivityConfig = activity
	return opts
}

// Hub exposes the configured service when enabled.
func (a *Admin) Hub() *hubpkg.Service {
	if !a.cfg.EnableHub {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds menu entries when hub support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableHub || a.cfg.MenuBuilder == nil {
		return nil
	}
	if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem); err != nil {
		return err
	}
	if !a.cfg.WidgetLinks {
		return nil
	}
	widgets, err := a.cfg.Service.ListWidgets(ctx)
	if err != nil {
		return fmt.Errorf("goadmin: list widgets: %w", err)
	}
	base := strings.TrimRight(a.cfg.BasePath, "/")
	for idx, widget := range widgets {
		item := MenuItem{
			Label:    widget.Name,
			Route:    base + "/widgets/" + widget.ID + "/demo",
			Icon:     "external-link",
			Parent:   a.cfg.DefaultMenuItem.Route,
			Position: idx,
		}
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return err
		}
	}
	return nil
}
