package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
	"github.com/goliatone/go-contact-hub/components/hub/commands"
	"github.com/goliatone/go-contact-hub/components/hub/queries"
)

// Activity headers copied into the request context.
const (
	HeaderActorID  = "X-Actor-ID"
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
	HeaderFilename = "X-Filename"
)

// MaxRequestBody is the body limit servers hosting these handlers should
// apply. It sits above hub.MaxProjectSize so oversized imports reach the
// service and get its validation message.
const MaxRequestBody = hub.MaxProjectSize + 1<<20

var errNotWired = errors.New("httpapi: handler not configured")

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Create        gocommand.Commander[commands.CreateWidgetInput]
	Update        gocommand.Commander[commands.UpdateWidgetInput]
	UpdateChannel gocommand.Commander[commands.UpdateChannelInput]
	Delete        gocommand.Commander[commands.DeleteWidgetInput]
	Import        gocommand.Commander[commands.ImportProjectInput]
	Submit        gocommand.Commander[hub.SubmitRequest]

	List   gocommand.Querier[queries.ListWidgetsInput, []hub.WidgetConfig]
	Widget gocommand.Querier[queries.WidgetInput, hub.WidgetConfig]
	Style  gocommand.Querier[queries.WidgetInput, hub.ResolvedStyle]
	Script gocommand.Querier[queries.ScriptInput, string]
	Demo   gocommand.Querier[queries.WidgetInput, string]
	Export gocommand.Querier[queries.WidgetInput, queries.ExportResult]
}

// NewHandlers wires every handler to service.
func NewHandlers(service *hub.Service, telemetry commands.Telemetry) *Handlers {
	return &Handlers{
		Create:        commands.NewCreateWidgetCommand(service, telemetry),
		Update:        commands.NewUpdateWidgetCommand(service, telemetry),
		UpdateChannel: commands.NewUpdateChannelCommand(service, telemetry),
		Delete:        commands.NewDeleteWidgetCommand(service, telemetry),
		Import:        commands.NewImportProjectCommand(service, telemetry),
		Submit:        commands.NewSubmitCommand(service, telemetry),
		List:          queries.NewListWidgetsQuery(service),
		Widget:        queries.NewWidgetQuery(service),
		Style:         queries.NewStyleQuery(service),
		Script:        queries.NewScriptQuery(service),
		Demo:          queries.NewDemoQuery(service),
		Export:        queries.NewExportQuery(service),
	}
}

func (h *Handlers) HandleListWidgets(w http.ResponseWriter, r *http.Request) {
	if h.List == nil {
		writeError(w, errNotWired)
		return
	}
	widgets, err := h.List.Query(r.Context(), queries.ListWidgetsInput{})
	if err != nil {
		writeError(w, err)
		return
	}
	if widgets == nil {
		widgets = []hub.WidgetConfig{}
	}
	writeJSON(w, http.StatusOK, widgets)
}

func (h *Handlers) HandleGetWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Widget == nil {
		writeError(w, errNotWired)
		return
	}
	widget, err := h.Widget.Query(r.Context(), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

func (h *Handlers) HandleCreateWidget(w http.ResponseWriter, r *http.Request) {
	if h.Create == nil {
		writeError(w, errNotWired)
		return
	}
	var payload commands.CreateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var created hub.WidgetConfig
	payload.Result = &created
	if err := h.Create.Execute(WithActivity(r), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdateWidget replaces the widget. The path id wins over the body id.
func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Update == nil {
		writeError(w, errNotWired)
		return
	}
	var widget hub.WidgetConfig
	if err := json.NewDecoder(r.Body).Decode(&widget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	widget.ID = widgetID
	var saved hub.WidgetConfig
	if err := h.Update.Execute(WithActivity(r), commands.UpdateWidgetInput{Widget: widget, Result: &saved}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) HandleUpdateChannel(w http.ResponseWriter, r *http.Request, widgetID, channel string) {
	if h.UpdateChannel == nil {
		writeError(w, errNotWired)
		return
	}
	var update hub.ChannelUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var saved hub.WidgetConfig
	input := commands.UpdateChannelInput{
		WidgetID: widgetID,
		Channel:  hub.ChannelType(channel),
		Update:   update,
		Result:   &saved,
	}
	if err := h.UpdateChannel.Execute(WithActivity(r), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) HandleDeleteWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Delete == nil {
		writeError(w, errNotWired)
		return
	}
	if err := h.Delete.Execute(WithActivity(r), commands.DeleteWidgetInput{WidgetID: widgetID}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleImportProject reads the raw project file from the body. The original
// file name travels in the X-Filename header.
func (h *Handlers) HandleImportProject(w http.ResponseWriter, r *http.Request) {
	if h.Import == nil {
		writeError(w, errNotWired)
		return
	}
	var imported hub.WidgetConfig
	input := commands.ImportProjectInput{
		Filename: r.Header.Get(HeaderFilename),
		Size:     r.ContentLength,
		Body:     r.Body,
		Result:   &imported,
	}
	if err := h.Import.Execute(WithActivity(r), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, imported)
}

func (h *Handlers) HandleExportProject(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Export == nil {
		writeError(w, errNotWired)
		return
	}
	result, err := h.Export.Query(WithActivity(r), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (h *Handlers) HandleStyle(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Style == nil {
		writeError(w, errNotWired)
		return
	}
	style, err := h.Style.Query(r.Context(), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"style":     style,
		"variables": style.CSSVariables(),
	})
}

// HandleScript serves the embed script. ?mode=preview selects the preview
// delay.
func (h *Handlers) HandleScript(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Script == nil {
		writeError(w, errNotWired)
		return
	}
	input := queries.ScriptInput{WidgetID: widgetID, Mode: hub.EmitMode(r.URL.Query().Get("mode"))}
	script, err := h.Script.Query(WithActivity(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(script))
}

func (h *Handlers) HandleDemo(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Demo == nil {
		writeError(w, errNotWired)
		return
	}
	page, err := h.Demo.Query(WithActivity(r), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// HandleSubmit relays a visitor submission. Failures carry the visitor facing
// message next to the error code.
func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request, widgetID string) {
	if h.Submit == nil {
		writeError(w, errNotWired)
		return
	}
	var payload hub.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.WidgetID = widgetID
	if err := h.Submit.Execute(WithActivity(r), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": hub.DefaultPanelCopy().SuccessTitle})
}

// WithActivity copies the activity headers of r into its context.
func WithActivity(r *http.Request) context.Context {
	meta := hub.ActivityContext{
		ActorID:  r.Header.Get(HeaderActorID),
		UserID:   r.Header.Get(HeaderUserID),
		TenantID: r.Header.Get(HeaderTenantID),
	}
	if meta == (hub.ActivityContext{}) {
		return r.Context()
	}
	return hub.ContextWithActivity(r.Context(), meta)
}

// ErrorBody is the JSON shape of failed responses.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewErrorBody describes err for clients.
func NewErrorBody(err error) ErrorBody {
	body := ErrorBody{Error: err.Error(), Message: hub.UserMessage(err)}
	var coded interface{ ErrCode() string }
	if errors.As(err, &coded) {
		body.Code = coded.ErrCode()
	}
	return body
}

func writeError(w http.ResponseWriter, err error) {
	status := hub.StatusCode(err)
	if errors.Is(err, hub.ErrMissingCredentials) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, NewErrorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
