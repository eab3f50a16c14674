package queries

import (
	"context"
	"testing"

	hub "github.com/goliatone/go-contact-hub/components/hub"
)

type stubService struct {
	calls    int
	lastMode hub.EmitMode
}

func (s *stubService) Widget(_ context.Context, id string) (hub.WidgetConfig, error) {
	s.calls++
	return hub.WidgetConfig{ID: id}, nil
}

func (s *stubService) ListWidgets(context.Context) ([]hub.WidgetConfig, error) {
	s.calls++
	return []hub.WidgetConfig{{ID: "w-1"}, {ID: "w-2"}}, nil
}

func (s *stubService) ResolveStyle(context.Context, string) (hub.ResolvedStyle, error) {
	s.calls++
	return hub.ResolvedStyle{}, nil
}

func (s *stubService) EmitScript(_ context.Context, _ string, mode hub.EmitMode) (string, error) {
	s.calls++
	s.lastMode = mode
	return "(function(){})();", nil
}

func (s *stubService) EmitDemo(context.Context, string) (string, error) {
	s.calls++
	return "<!DOCTYPE html>", nil
}

func (s *stubService) ExportProject(_ context.Context, id string) ([]byte, string, error) {
	s.calls++
	return []byte(`{"id":"` + id + `"}`), "support-widget-project.json", nil
}

func TestWidgetQuery(t *testing.T) {
	service := &stubService{}
	widget, err := NewWidgetQuery(service).Query(context.Background(), WidgetInput{WidgetID: "w-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || widget.ID != "w-1" {
		t.Fatalf("expected 1 call for w-1, got %d %q", service.calls, widget.ID)
	}
}

func TestListWidgetsQuery(t *testing.T) {
	service := &stubService{}
	widgets, err := NewListWidgetsQuery(service).Query(context.Background(), ListWidgetsInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(widgets))
	}
}

func TestScriptQueryDefaultsToEmbed(t *testing.T) {
	service := &stubService{}
	query := NewScriptQuery(service)
	if _, err := query.Query(context.Background(), ScriptInput{WidgetID: "w-1"}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.lastMode != hub.ModeEmbed {
		t.Fatalf("expected embed mode, got %q", service.lastMode)
	}
	if _, err := query.Query(context.Background(), ScriptInput{WidgetID: "w-1", Mode: hub.ModePreview}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.lastMode != hub.ModePreview {
		t.Fatalf("expected preview mode, got %q", service.lastMode)
	}
}

func TestStyleAndDemoQueries(t *testing.T) {
	service := &stubService{}
	if _, err := NewStyleQuery(service).Query(context.Background(), WidgetInput{WidgetID: "w-1"}); err != nil {
		t.Fatalf("style query returned error: %v", err)
	}
	page, err := NewDemoQuery(service).Query(context.Background(), WidgetInput{WidgetID: "w-1"})
	if err != nil {
		t.Fatalf("demo query returned error: %v", err)
	}
	if page == "" || service.calls != 2 {
		t.Fatalf("expected demo page after 2 calls, got %d", service.calls)
	}
}

func TestExportQuery(t *testing.T) {
	service := &stubService{}
	result, err := NewExportQuery(service).Query(context.Background(), WidgetInput{WidgetID: "w-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Filename != "support-widget-project.json" || len(result.Data) == 0 {
		t.Fatalf("unexpected export result: %+v", result)
	}
}

func TestQueriesRequireService(t *testing.T) {
	if _, err := NewWidgetQuery(nil).Query(context.Background(), WidgetInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
	if _, err := NewExportQuery(nil).Query(context.Background(), WidgetInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}
