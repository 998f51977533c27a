package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	router "github.com/goliatone/go-router"

	console "github.com/strategicai/console/components/console"
	"github.com/strategicai/console/components/console/commands"
	"github.com/strategicai/console/components/console/gate"
	"github.com/strategicai/console/components/console/httpapi"
)

const visitorCookie = "console_visitor"

// ViewerResolver converts a router.Context into a console.ViewerContext.
type ViewerResolver func(router.Context) console.ViewerContext

// Config wires go-router with console controllers, APIs, the landing gate,
// and refresh hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *console.Controller
	API            httpapi.Executor
	Broadcast      *console.BroadcastHook
	Gate           *gate.Gate
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Landing     string
	Enter       string
	HTML        string
	Page        string
	Layout      string
	Panels      string
	PanelID     string
	Reorder     string
	Refresh     string
	Preferences string
	Sidebar     string
	WebSocket   string
}

// Register mounts console routes (HTML, JSON, REST, WebSocket) on a go-router
// router. Page routes sit behind the landing gate when one is configured.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Landing, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Gate == nil || cfg.Gate.Allow(ctx.Context(), visitorID(ctx)) {
			return redirect(ctx, routes.HTML)
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderLanding(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Post(routes.Enter, router.WrapHandler(func(ctx router.Context) error {
		visitor := visitorID(ctx)
		if visitor == "" {
			visitor = issueVisitor(ctx)
		}
		if cfg.Gate != nil {
			if err := cfg.Gate.MarkSeen(ctx.Context(), visitor); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
		}
		return redirect(ctx, routes.HTML)
	}))

	renderShell := func(ctx router.Context, pageCode string) error {
		if cfg.Gate != nil && !cfg.Gate.Allow(ctx.Context(), visitorID(ctx)) {
			return redirect(ctx, routes.Landing)
		}
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, pageCode, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		return renderShell(ctx, "")
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		return renderShell(ctx, ctx.Param("code"))
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Panels, router.WrapHandler(func(ctx router.Context) error {
		var payload console.AddPanelRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Assign(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.PanelID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("panel id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemovePanelInput{PanelID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderPanelsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshPanelInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutPreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Sidebar, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ToggleSidebarInput{Viewer: resolver(ctx)}
		if err := api.ToggleSidebar(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) console.ViewerContext {
	var viewer console.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if viewer.UserID == "" {
		// Anonymous viewers get preferences keyed by their visitor cookie.
		viewer.UserID = visitorID(ctx)
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func visitorID(ctx router.Context) string {
	header := ctx.Header("Cookie")
	if header == "" {
		return ""
	}
	request := http.Request{Header: http.Header{"Cookie": []string{header}}}
	if cookie, err := request.Cookie(visitorCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func issueVisitor(ctx router.Context) string {
	id := uuid.NewString()
	cookie := http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	ctx.SetHeader("Set-Cookie", cookie.String())
	return id
}

func redirect(ctx router.Context, target string) error {
	ctx.SetHeader("Location", target)
	return ctx.JSON(http.StatusFound, map[string]string{"location": target})
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = strings.TrimSpace(token[:idx])
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Landing == "" {
		routes.Landing = "/"
	}
	if routes.Enter == "" {
		routes.Enter = "/console/enter"
	}
	if routes.HTML == "" {
		routes.HTML = "/console"
	}
	if routes.Page == "" {
		routes.Page = "/console/pages/:code"
	}
	if routes.Layout == "" {
		routes.Layout = "/console/_layout"
	}
	if routes.Panels == "" {
		routes.Panels = "/console/panels"
	}
	if routes.PanelID == "" {
		routes.PanelID = "/console/panels/:id"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/console/panels/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/console/panels/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/console/preferences"
	}
	if routes.Sidebar == "" {
		routes.Sidebar = "/console/sidebar/toggle"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/console/ws"
	}
	return routes
}
