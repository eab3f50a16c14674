package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ettle/strcase"

	hub "github.com/goliatone/go-contact-hub/components/hub"
)

type newCmd struct {
	Name        string `required:"" help:"Widget name shown in the editor."`
	Title       string `help:"Panel title."`
	Description string `help:"Panel description."`
}

func (cmd *newCmd) Run(a *app) error {
	cfg, err := a.service.CreateWidget(a.ctx, hub.CreateWidgetRequest{
		Name:        cmd.Name,
		Title:       cmd.Title,
		Description: cmd.Description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created %s (%s)\n", cfg.Name, cfg.ID)
	return nil
}

type listCmd struct{}

func (listCmd) Run(a *app) error {
	widgets, err := a.service.ListWidgets(a.ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTYLE\tCHANNELS\tCREATED")
	for _, w := range widgets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n",
			w.ID, w.Name, w.PanelStyle, len(w.EnabledChannels()), len(w.Channels),
			humanize.Time(time.UnixMilli(w.CreatedAt)))
	}
	return tw.Flush()
}

type channelCmd struct {
	ID      string          `arg:"" help:"Widget id."`
	Type    hub.ChannelType `arg:"" enum:"telegram,whatsapp,gmail,proton" help:"Channel type."`
	Enable  bool            `xor:"toggle" help:"Enable the channel."`
	Disable bool            `xor:"toggle" help:"Disable the channel."`
	Label   string          `help:"New button label."`
	Icon    string          `type:"existingfile" help:"Image file used as a custom icon."`
}

func (cmd *channelCmd) Run(a *app) error {
	update, err := cmd.update()
	if err != nil {
		return err
	}
	cfg, err := a.service.UpdateChannel(a.ctx, cmd.ID, cmd.Type, update)
	if err != nil {
		return err
	}
	ch, _ := cfg.Channel(cmd.Type)
	fmt.Fprintf(a.out, "✓ %s: %s enabled=%t label=%q\n", cfg.ID, ch.Type, ch.Enabled, ch.Label)
	return nil
}

func (cmd *channelCmd) update() (hub.ChannelUpdate, error) {
	var update hub.ChannelUpdate
	if cmd.Enable || cmd.Disable {
		enabled := cmd.Enable
		update.Enabled = &enabled
	}
	if cmd.Label != "" {
		update.Label = &cmd.Label
	}
	if cmd.Icon != "" {
		file, err := os.Open(cmd.Icon)
		if err != nil {
			return update, fmt.Errorf("hubctl: open icon: %w", err)
		}
		defer file.Close()
		uri, err := hub.DataURIFromFile(filepath.Base(cmd.Icon), file)
		if err != nil {
			return update, err
		}
		mode := hub.IconCustom
		update.IconMode = &mode
		update.CustomIconURL = &uri
	}
	return update, nil
}

type styleCmd struct {
	ID string `arg:"" help:"Widget id."`
}

func (cmd *styleCmd) Run(a *app) error {
	style, err := a.service.ResolveStyle(a.ctx, cmd.ID)
	if err != nil {
		return err
	}
	vars := style.CSSVariables()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s: %s;\n", k, vars[k])
	}
	return nil
}

type emitCmd struct {
	ID      string       `arg:"" help:"Widget id."`
	Mode    hub.EmitMode `default:"embed" enum:"embed,preview" help:"Delivery mode."`
	Out     string       `short:"o" type:"path" help:"Write the script to this file (defaults to <widget-name>.js with --save)."`
	Save    bool         `help:"Write the script next to the working directory using the widget name."`
	Snippet bool         `help:"Print the <script> embed snippet instead of the raw script."`
}

func (cmd *emitCmd) Run(a *app) error {
	if cmd.Snippet {
		cfg, err := a.service.Widget(a.ctx, cmd.ID)
		if err != nil {
			return err
		}
		emitter, err := a.service.Emitter()
		if err != nil {
			return err
		}
		snippet, err := emitter.EmbedSnippet(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, snippet)
		return err
	}
	script, err := a.service.EmitScript(a.ctx, cmd.ID, cmd.Mode)
	if err != nil {
		return err
	}
	path := cmd.Out
	if path == "" && cmd.Save {
		cfg, err := a.service.Widget(a.ctx, cmd.ID)
		if err != nil {
			return err
		}
		path = scriptFilename(cfg.Name)
	}
	if path == "" {
		_, err = fmt.Fprintln(a.out, script)
		return err
	}
	return writeOutput(a, path, []byte(script))
}

type demoCmd struct {
	ID  string `arg:"" help:"Widget id."`
	Out string `short:"o" type:"path" default:"demo.html" help:"Output HTML file."`
}

func (cmd *demoCmd) Run(a *app) error {
	page, err := a.service.EmitDemo(a.ctx, cmd.ID)
	if err != nil {
		return err
	}
	return writeOutput(a, cmd.Out, []byte(page))
}

type exportCmd struct {
	ID  string `arg:"" help:"Widget id."`
	Dir string `type:"path" default:"." help:"Directory receiving the project file."`
}

func (cmd *exportCmd) Run(a *app) error {
	data, filename, err := a.service.ExportProject(a.ctx, cmd.ID)
	if err != nil {
		return err
	}
	return writeOutput(a, filepath.Join(cmd.Dir, filename), data)
}

type importCmd struct {
	File string `arg:"" type:"existingfile" help:"Project file to import."`
}

func (cmd *importCmd) Run(a *app) error {
	file, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("hubctl: open project: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("hubctl: stat project: %w", err)
	}
	cfg, err := a.service.ImportProject(a.ctx, filepath.Base(cmd.File), info.Size(), file)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Imported %s as %s\n", cfg.Name, cfg.ID)
	return nil
}

type sendCmd struct {
	ID      string          `arg:"" help:"Widget id."`
	Channel hub.ChannelType `required:"" enum:"telegram,whatsapp,gmail,proton" help:"Channel the visitor picked."`
	Contact string          `required:"" help:"Visitor contact handle."`
	Message string          `help:"Visitor message."`
	Preview bool            `help:"Simulate delivery when the widget has no credentials."`
	JSON    bool            `name:"json" help:"Print the outcome as JSON."`
}

func (cmd *sendCmd) Run(a *app) error {
	err := a.service.Submit(a.ctx, hub.SubmitRequest{
		WidgetID: cmd.ID,
		Channel:  cmd.Channel,
		Contact:  cmd.Contact,
		Message:  cmd.Message,
		Preview:  cmd.Preview,
	})
	if cmd.JSON {
		outcome := map[string]any{"ok": err == nil}
		if err != nil {
			outcome["error"] = hub.UserMessage(err)
		}
		if encErr := json.NewEncoder(a.out).Encode(outcome); encErr != nil {
			return encErr
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("%s: %w", hub.UserMessage(err), err)
	}
	fmt.Fprintln(a.out, "✓ "+hub.DefaultPanelCopy().SuccessTitle)
	return nil
}

type deleteCmd struct {
	ID string `arg:"" help:"Widget id."`
}

func (cmd *deleteCmd) Run(a *app) error {
	if err := a.service.DeleteWidget(a.ctx, cmd.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted %s\n", cmd.ID)
	return nil
}

func scriptFilename(name string) string {
	slug := strcase.ToKebab(strings.TrimSpace(name))
	if slug == "" {
		slug = "contact-widget"
	}
	return slug + ".js"
}

func writeOutput(a *app, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("hubctl: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("hubctl: write %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "✓ Wrote %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}
