package gorouter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	hub "github.com/goliatone/go-contact-hub/components/hub"
	"github.com/goliatone/go-contact-hub/components/hub/httpapi"
)

func projectOfSize(t *testing.T, description int) []byte {
	t.Helper()
	cfg := hub.NewWidgetConfig("w-large", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	cfg.Description = strings.Repeat("a", description)
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal project: %v", err)
	}
	return data
}

func TestFiberAppBodyLimitFitsProjects(t *testing.T) {
	app := FiberApp(nil)
	if got := int64(app.Config().BodyLimit); got <= hub.MaxProjectSize {
		t.Fatalf("expected body limit above %d, got %d", hub.MaxProjectSize, got)
	}

	service := hub.NewService(hub.Options{Store: hub.NewInMemoryWidgetStore()})
	api := httpapi.NewHandlers(service, nil)
	app.Post("/hub/widgets/import", adaptor.HTTPHandlerFunc(api.HandleImportProject))

	body := projectOfSize(t, 4<<20+512<<10)
	req := httptest.NewRequest(http.MethodPost, "/hub/widgets/import", bytes.NewReader(body))
	req.Header.Set(httpapi.HeaderFilename, "large-project.json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for a %d byte project, got %d", len(body), resp.StatusCode)
	}

	widgets, err := service.ListWidgets(req.Context())
	if err != nil {
		t.Fatalf("list widgets: %v", err)
	}
	if len(widgets) != 1 {
		t.Fatalf("expected imported widget, got %d", len(widgets))
	}
}

func TestFiberAppRejectsBodiesAboveLimit(t *testing.T) {
	app := FiberApp(nil)
	app.Post("/echo", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	body := bytes.Repeat([]byte("a"), int(httpapi.MaxRequestBody)+1)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body)), -1)
	if err != nil {
		// fasthttp reports the oversized body as a connection error.
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
}
