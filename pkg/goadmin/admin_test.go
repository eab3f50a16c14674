package goadmin_test

import (
	"context"
	"testing"
	"time"

	core "github.com/goliatone/go-contact-hub/components/hub"
	activitypkg "github.com/goliatone/go-contact-hub/pkg/activity"
	"github.com/goliatone/go-contact-hub/pkg/goadmin"
	hubpkg "github.com/goliatone/go-contact-hub/pkg/hub"
)

type stubMenuBuilder struct {
	calls int
	items []goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.calls++
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := hubpkg.NewService(core.Options{Store: core.NewInMemoryWidgetStore()})
	admin, err := goadmin.New(goadmin.Config{
		EnableHub:   true,
		Service:     service,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if admin.Hub() == nil {
		t.Fatalf("expected hub service")
	}
}

func TestAdminBootstrapWidgetLinks(t *testing.T) {
	builder := &stubMenuBuilder{}
	store := core.NewInMemoryWidgetStore(core.NewWidgetConfig("w-1", time.Unix(0, 0)))
	admin, err := goadmin.New(goadmin.Config{
		EnableHub:   true,
		Service:     hubpkg.NewService(core.Options{Store: store}),
		MenuBuilder: builder,
		WidgetLinks: true,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", builder.calls)
	}
	if got := builder.items[1].Route; got != "/hub/widgets/w-1/demo" {
		t.Fatalf("unexpected widget route %q", got)
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableHub:   false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if admin.Hub() != nil {
		t.Fatalf("expected nil hub when disabled")
	}
}

func TestAdminRequiresService(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableHub: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminBuildsServiceWithActivity(t *testing.T) {
	capture := &activitypkg.CaptureHook{}
	admin, err := goadmin.New(goadmin.Config{
		EnableHub:     true,
		Options:       core.Options{Store: core.NewInMemoryWidgetStore()},
		ActivityHooks: activitypkg.Hooks{capture},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	service := admin.Hub()
	if service == nil {
		t.Fatalf("expected hub service built from options")
	}
	if _, err := service.CreateWidget(context.Background(), core.CreateWidgetRequest{Name: "Support"}); err != nil {
		t.Fatalf("CreateWidget returned error: %v", err)
	}
	if len(capture.Events) != 1 || capture.Events[0].Verb != core.VerbWidgetCreate {
		t.Fatalf("expected widget create activity, got %+v", capture.Events)
	}
}

func TestAdminActivityConfigFiltersVerbs(t *testing.T) {
	capture := &activitypkg.CaptureHook{}
	admin, err := goadmin.New(goadmin.Config{
		EnableHub:      true,
		Options:        core.Options{Store: core.NewInMemoryWidgetStore()},
		ActivityHooks:  activitypkg.Hooks{capture},
		ActivityConfig: activitypkg.Config{Enabled: true, Verbs: []string{core.VerbWidgetDelete}},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()
	cfg, err := admin.Hub().CreateWidget(ctx, core.CreateWidgetRequest{Name: "Support"})
	if err != nil {
		t.Fatalf("CreateWidget returned error: %v", err)
	}
	if err := admin.Hub().DeleteWidget(ctx, cfg.ID); err != nil {
		t.Fatalf("DeleteWidget returned error: %v", err)
	}
	if len(capture.Events) != 1 || capture.Events[0].Verb != core.VerbWidgetDelete {
		t.Fatalf("expected only the delete activity, got %+v", capture.Events)
	}
}

func TestAdminRejectsHooksForPrebuiltService(t *testing.T) {
	_, err := goadmin.New(goadmin.Config{
		EnableHub:     true,
		Service:       hubpkg.NewService(core.Options{Store: core.NewInMemoryWidgetStore()}),
		ActivityHooks: activitypkg.Hooks{&activitypkg.CaptureHook{}},
	})
	if err == nil {
		t.Fatalf("expected error when hooks cannot reach the service")
	}
}
