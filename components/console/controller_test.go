package console

import (
	"bytes"
	"context"
	"io"
	"testing"
)

type stubRenderer struct {
	name string
	data any
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data = data
	body := "<html>" + name + "</html>"
	for _, w := range out {
		_, _ = io.WriteString(w, body)
	}
	return body, nil
}

func controllerFixture(t *testing.T) (*Controller, *Service) {
	t.Helper()
	store := &fakePanelStore{
		resolved: map[string][]PanelInstance{
			"console.page.arpe": {
				{
					ID:            "p1",
					DefinitionID:  "console.panel.metric_band",
					Configuration: map[string]any{"label": "Prediction Accuracy", "floor": 60.0, "ceiling": 80.0},
				},
			},
		},
	}
	service := NewService(Options{
		PanelStore:      store,
		PreferenceStore: NewInMemoryPreferenceStore(),
		Pages:           []string{"console.page.arpe"},
	})
	controller := NewController(service,
		WithRenderer(&stubRenderer{}),
		WithControllerProviders(NewRegistry()),
	)
	return controller, service
}

func TestControllerPageViewBuildsShell(t *testing.T) {
	controller, _ := controllerFixture(t)
	view, err := controller.PageView(context.Background(), ViewerContext{UserID: "user-1"}, "console.page.arpe")
	if err != nil {
		t.Fatalf("PageView returned error: %v", err)
	}
	if view.ActivePage != "console.page.arpe" {
		t.Fatalf("unexpected active page %q", view.ActivePage)
	}
	if view.SidebarCollapsed {
		t.Fatalf("expected expanded sidebar default")
	}
	if len(view.Nav) != len(DefaultPageDefinitions()) {
		t.Fatalf("expected full nav, got %d items", len(view.Nav))
	}
	found := false
	for _, item := range view.Nav {
		if item.Code == "console.page.arpe" && item.Active {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected active nav item for page")
	}
	if len(view.Panels) != 1 || view.Panels[0].Title != "Prediction Accuracy" {
		t.Fatalf("unexpected panels %#v", view.Panels)
	}
}

func TestControllerPageViewDefaultsToFirstPage(t *testing.T) {
	controller, _ := controllerFixture(t)
	view, err := controller.PageView(context.Background(), ViewerContext{UserID: "user-1"}, "")
	if err != nil {
		t.Fatalf("PageView returned error: %v", err)
	}
	if view.ActivePage != DefaultPageCodes()[0] {
		t.Fatalf("expected first default page, got %q", view.ActivePage)
	}
}

func TestControllerRenderTemplateUsesShellTemplate(t *testing.T) {
	renderer := &stubRenderer{}
	controller, _ := controllerFixture(t)
	controller.renderer = renderer

	var buf bytes.Buffer
	err := controller.RenderTemplate(context.Background(), ViewerContext{UserID: "user-1"}, "console.page.arpe", &buf)
	if err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.name != "console" {
		t.Fatalf("expected console template, got %q", renderer.name)
	}
	ctx, ok := renderer.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map context, got %T", renderer.data)
	}
	if ctx["active_page"] != "console.page.arpe" {
		t.Fatalf("unexpected template context %#v", ctx)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output written")
	}
}

func TestControllerRenderLanding(t *testing.T) {
	renderer := &stubRenderer{}
	controller, _ := controllerFixture(t)
	controller.renderer = renderer

	var buf bytes.Buffer
	if err := controller.RenderLanding(context.Background(), &buf); err != nil {
		t.Fatalf("RenderLanding returned error: %v", err)
	}
	if renderer.name != "landing" {
		t.Fatalf("expected landing template, got %q", renderer.name)
	}
}

func TestControllerRenderTemplateRequiresRenderer(t *testing.T) {
	controller := NewController(NewService(Options{PanelStore: &fakePanelStore{}}))
	err := controller.RenderTemplate(context.Background(), ViewerContext{}, "", io.Discard)
	if err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestControllerLayoutPayloadIncludesShellState(t *testing.T) {
	controller, _ := controllerFixture(t)
	payload, err := controller.LayoutPayload(context.Background(), ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("LayoutPayload returned error: %v", err)
	}
	if _, ok := payload["pages"]; !ok {
		t.Fatalf("expected pages in payload")
	}
	if _, ok := payload["nav"]; !ok {
		t.Fatalf("expected nav in payload")
	}
	if collapsed, ok := payload["sidebar_collapsed"].(bool); !ok || collapsed {
		t.Fatalf("expected sidebar_collapsed false, got %#v", payload["sidebar_collapsed"])
	}
}
