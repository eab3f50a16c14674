package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	hub "github.com/goliatone/go-contact-hub/components/hub"
	"github.com/goliatone/go-contact-hub/components/hub/commands"
	"github.com/goliatone/go-contact-hub/components/hub/httpapi"
	"github.com/goliatone/go-contact-hub/components/hub/queries"
)

// ActivityResolver extracts the actor of a request.
type ActivityResolver func(router.Context) hub.ActivityContext

// Config wires go-router with the hub commands and queries.
type Config[T any] struct {
	Router           router.Router[T]
	API              *httpapi.Handlers
	ActivityResolver ActivityResolver
	BasePath         string
	Routes           RouteConfig
}

// RouteConfig customizes the relative paths of the hub endpoints.
type RouteConfig struct {
	Widgets  string
	WidgetID string
	Channel  string
	Style    string
	Script   string
	Demo     string
	Export   string
	Import   string
	Submit   string
}

// routeContext is the part of router.Context the handlers use.
type routeContext interface {
	Context() context.Context
	Param(name string, defaultValue ...string) string
	Query(name string, defaultValue ...string) string
	Header(key string) string
	Body() []byte
	SetHeader(key, value string) router.Context
	Send(body []byte) error
	JSON(code int, v any) error
}

type routeHandler func(routeContext) error

type route struct {
	method  string
	path    string
	handler routeHandler
}

type registrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// Register mounts the hub REST routes on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api handlers are required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/hub"
	}
	resolver := cfg.ActivityResolver
	if resolver == nil {
		resolver = defaultActivityResolver
	}
	group := cfg.Router.Group(base)
	mount(group, buildRoutes(cfg.API, defaultRouteConfig(cfg.Routes)), resolver)
	return nil
}

func mount(r registrar, routes []route, resolver ActivityResolver) {
	for _, rt := range routes {
		handler := rt.handler
		wrapped := router.WrapHandler(func(ctx router.Context) error {
			return handler(&activityContext{routerContext: ctx, ctx: hub.ContextWithActivity(ctx.Context(), resolver(ctx))})
		})
		switch rt.method {
		case http.MethodGet:
			r.Get(rt.path, wrapped)
		case http.MethodPost:
			r.Post(rt.path, wrapped)
		case http.MethodPut:
			r.Put(rt.path, wrapped)
		case http.MethodPatch:
			r.Patch(rt.path, wrapped)
		case http.MethodDelete:
			r.Delete(rt.path, wrapped)
		}
	}
}

// activityContext overrides the request context with one carrying the actor.
type activityContext struct {
	routerContext
	ctx context.Context
}

// routerContext aliases router.Context so the embedded field does not clash
// with the Context method.
type routerContext = router.Context

func (a *activityContext) Context() context.Context { return a.ctx }

func buildRoutes(api *httpapi.Handlers, routes RouteConfig) []route {
	return []route{
		{http.MethodGet, routes.Widgets, func(ctx routeContext) error {
			if api.List == nil {
				return respondError(ctx, errNotWired)
			}
			widgets, err := api.List.Query(ctx.Context(), queries.ListWidgetsInput{})
			if err != nil {
				return respondError(ctx, err)
			}
			if widgets == nil {
				widgets = []hub.WidgetConfig{}
			}
			return ctx.JSON(http.StatusOK, widgets)
		}},
		{http.MethodPost, routes.Widgets, func(ctx routeContext) error {
			if api.Create == nil {
				return respondError(ctx, errNotWired)
			}
			var payload commands.CreateWidgetInput
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			var created hub.WidgetConfig
			payload.Result = &created
			if err := api.Create.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusCreated, created)
		}},
		{http.MethodPost, routes.Import, func(ctx routeContext) error {
			if api.Import == nil {
				return respondError(ctx, errNotWired)
			}
			body := ctx.Body()
			var imported hub.WidgetConfig
			input := commands.ImportProjectInput{
				Filename: ctx.Query("filename"),
				Size:     int64(len(body)),
				Body:     bytes.NewReader(body),
				Result:   &imported,
			}
			if input.Filename == "" {
				input.Filename = ctx.Header(httpapi.HeaderFilename)
			}
			if err := api.Import.Execute(ctx.Context(), input); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusCreated, imported)
		}},
		{http.MethodGet, routes.WidgetID, func(ctx routeContext) error {
			if api.Widget == nil {
				return respondError(ctx, errNotWired)
			}
			widget, err := api.Widget.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, widget)
		}},
		{http.MethodPut, routes.WidgetID, func(ctx routeContext) error {
			if api.Update == nil {
				return respondError(ctx, errNotWired)
			}
			var widget hub.WidgetConfig
			if err := json.Unmarshal(ctx.Body(), &widget); err != nil {
				return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			widget.ID = ctx.Param("id")
			var saved hub.WidgetConfig
			if err := api.Update.Execute(ctx.Context(), commands.UpdateWidgetInput{Widget: widget, Result: &saved}); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, saved)
		}},
		{http.MethodDelete, routes.WidgetID, func(ctx routeContext) error {
			if api.Delete == nil {
				return respondError(ctx, errNotWired)
			}
			id := ctx.Param("id")
			if id == "" {
				return respondError(ctx, hub.ErrMissingWidgetID)
			}
			if err := api.Delete.Execute(ctx.Context(), commands.DeleteWidgetInput{WidgetID: id}); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
		}},
		{http.MethodPatch, routes.Channel, func(ctx routeContext) error {
			if api.UpdateChannel == nil {
				return respondError(ctx, errNotWired)
			}
			var update hub.ChannelUpdate
			if err := json.Unmarshal(ctx.Body(), &update); err != nil {
				return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			var saved hub.WidgetConfig
			input := commands.UpdateChannelInput{
				WidgetID: ctx.Param("id"),
				Channel:  hub.ChannelType(ctx.Param("type")),
				Update:   update,
				Result:   &saved,
			}
			if err := api.UpdateChannel.Execute(ctx.Context(), input); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, saved)
		}},
		{http.MethodGet, routes.Style, func(ctx routeContext) error {
			if api.Style == nil {
				return respondError(ctx, errNotWired)
			}
			style, err := api.Style.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
			if err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, map[string]any{"style": style, "variables": style.CSSVariables()})
		}},
		{http.MethodGet, routes.Script, func(ctx routeContext) error {
			if api.Script == nil {
				return respondError(ctx, errNotWired)
			}
			input := queries.ScriptInput{WidgetID: ctx.Param("id"), Mode: hub.EmitMode(ctx.Query("mode"))}
			script, err := api.Script.Query(ctx.Context(), input)
			if err != nil {
				return respondError(ctx, err)
			}
			ctx.SetHeader("Content-Type", "application/javascript; charset=utf-8")
			return ctx.Send([]byte(script))
		}},
		{http.MethodGet, routes.Demo, func(ctx routeContext) error {
			if api.Demo == nil {
				return respondError(ctx, errNotWired)
			}
			page, err := api.Demo.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
			if err != nil {
				return respondError(ctx, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send([]byte(page))
		}},
		{http.MethodGet, routes.Export, func(ctx routeContext) error {
			if api.Export == nil {
				return respondError(ctx, errNotWired)
			}
			result, err := api.Export.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
			if err != nil {
				return respondError(ctx, err)
			}
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetHeader("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
			ctx.SetHeader("Content-Length", strconv.Itoa(len(result.Data)))
			return ctx.Send(result.Data)
		}},
		{http.MethodPost, routes.Submit, func(ctx routeContext) error {
			if api.Submit == nil {
				return respondError(ctx, errNotWired)
			}
			var payload hub.SubmitRequest
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			payload.WidgetID = ctx.Param("id")
			if err := api.Submit.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, err)
			}
			return ctx.JSON(http.StatusAccepted, map[string]string{"status": hub.DefaultPanelCopy().SuccessTitle})
		}},
	}
}

var errNotWired = errors.New("gorouter: handler not configured")

func defaultActivityResolver(ctx router.Context) hub.ActivityContext {
	meta := hub.ActivityContext{
		ActorID:  ctx.Header(httpapi.HeaderActorID),
		UserID:   ctx.Header(httpapi.HeaderUserID),
		TenantID: ctx.Header(httpapi.HeaderTenantID),
	}
	if v, ok := ctx.Locals("user_id").(string); ok && v != "" {
		meta.UserID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok && v != "" {
		meta.TenantID = v
	}
	if meta.ActorID == "" {
		meta.ActorID = meta.UserID
	}
	return meta
}

func respondError(ctx routeContext, err error) error {
	status := hub.StatusCode(err)
	if errors.Is(err, hub.ErrMissingCredentials) {
		status = http.StatusUnprocessableEntity
	}
	return ctx.JSON(status, httpapi.NewErrorBody(err))
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Widgets == "" {
		routes.Widgets = "/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/widgets/:id"
	}
	if routes.Channel == "" {
		routes.Channel = "/widgets/:id/channels/:type"
	}
	if routes.Style == "" {
		routes.Style = "/widgets/:id/style"
	}
	if routes.Script == "" {
		routes.Script = "/widgets/:id/script.js"
	}
	if routes.Demo == "" {
		routes.Demo = "/widgets/:id/demo"
	}
	if routes.Export == "" {
		routes.Export = "/widgets/:id/export"
	}
	if routes.Import == "" {
		routes.Import = "/widgets/import"
	}
	if routes.Submit == "" {
		routes.Submit = "/widgets/:id/submit"
	}
	return routes
}
