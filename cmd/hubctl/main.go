package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config  string `short:"c" default:"hubctl.yaml" type:"path" help:"Path to the hubctl YAML config."`
	EnvFile string `name:"env-file" default:".env" help:"Optional dotenv file with HUB_* overrides."`
	Store   string `help:"Override the widget store path."`

	New     newCmd     `cmd:"" help:"Create a widget with the default configuration."`
	List    listCmd    `cmd:"" help:"List widgets."`
	Channel channelCmd `cmd:"" help:"Toggle, relabel or re-icon a widget channel."`
	Style   styleCmd   `cmd:"" help:"Print the resolved CSS variables of a widget."`
	Emit    emitCmd    `cmd:"" help:"Emit the self-contained widget script."`
	Demo    demoCmd    `cmd:"" help:"Write the standalone demo page of a widget."`
	Export  exportCmd  `cmd:"" help:"Export a widget as a project file."`
	Import  importCmd  `cmd:"" help:"Import a project file as a new widget."`
	Send    sendCmd    `cmd:"" help:"Relay a test submission through a widget."`
	Delete  deleteCmd  `cmd:"" help:"Delete a widget."`
	Serve   serveCmd   `cmd:"" help:"Serve the hub REST API and metrics."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("hubctl"),
		kong.Description("Manage contact widgets and emit their embed scripts."),
		kong.UsageOnError(),
	)
	cfg, err := loadConfig(root.Config, root.EnvFile)
	ctx.FatalIfErrorf(err)
	if root.Store != "" {
		cfg.Store = root.Store
	}
	application, err := newApp(context.Background(), cfg, os.Stderr, os.Stdout)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(application))
}
