package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
	"github.com/strategicai/console/components/console/commands"
)

// Executor is the command surface router adapters mount. It keeps the
// transport layer decoupled from the concrete command types.
type Executor interface {
	Assign(ctx context.Context, req console.AddPanelRequest) error
	Remove(ctx context.Context, input commands.RemovePanelInput) error
	Reorder(ctx context.Context, input commands.ReorderPanelsInput) error
	Refresh(ctx context.Context, input commands.RefreshPanelInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error
}

// CommandExecutor implements Executor on top of go-command commanders.
type CommandExecutor struct {
	AssignCmd      gocommand.Commander[console.AddPanelRequest]
	RemoveCmd      gocommand.Commander[commands.RemovePanelInput]
	ReorderCmd     gocommand.Commander[commands.ReorderPanelsInput]
	RefreshCmd     gocommand.Commander[commands.RefreshPanelInput]
	PreferencesCmd gocommand.Commander[commands.SaveLayoutPreferencesInput]
	SidebarCmd     gocommand.Commander[commands.ToggleSidebarInput]
}

// NewCommandExecutor wires the full command set against a service.
func NewCommandExecutor(service *console.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		AssignCmd:      commands.NewAssignPanelCommand(service, telemetry),
		RemoveCmd:      commands.NewRemovePanelCommand(service, telemetry),
		ReorderCmd:     commands.NewReorderPanelsCommand(service, telemetry),
		RefreshCmd:     commands.NewRefreshPanelCommand(service, telemetry),
		PreferencesCmd: commands.NewSaveLayoutPreferencesCommand(service, telemetry),
		SidebarCmd:     commands.NewToggleSidebarCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Assign(ctx context.Context, req console.AddPanelRequest) error {
	if e.AssignCmd == nil {
		return errors.New("httpapi: assign command not configured")
	}
	return e.AssignCmd.Execute(ctx, req)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemovePanelInput) error {
	if e.RemoveCmd == nil {
		return errors.New("httpapi: remove command not configured")
	}
	return e.RemoveCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderPanelsInput) error {
	if e.ReorderCmd == nil {
		return errors.New("httpapi: reorder command not configured")
	}
	return e.ReorderCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshPanelInput) error {
	if e.RefreshCmd == nil {
		return errors.New("httpapi: refresh command not configured")
	}
	return e.RefreshCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	if e.PreferencesCmd == nil {
		return errors.New("httpapi: preferences command not configured")
	}
	return e.PreferencesCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error {
	if e.SidebarCmd == nil {
		return errors.New("httpapi: sidebar command not configured")
	}
	return e.SidebarCmd.Execute(ctx, input)
}

// Handlers exposes net/http endpoints backed by the executor for applications
// that mount the console without go-router. Broadcast is optional and powers
// the SSE endpoint.
type Handlers struct {
	API       Executor
	Broadcast *console.BroadcastHook
}

// HandleEvents streams panel events via Server-Sent Events.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, "event stream not configured", http.StatusNotFound)
		return
	}
	h.Broadcast.ServeSSE(w, r)
}

func (h *Handlers) HandleAssignPanel(w http.ResponseWriter, r *http.Request) {
	var payload console.AddPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Assign(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemovePanel(w http.ResponseWriter, r *http.Request, panelID string) {
	if err := h.API.Remove(r.Context(), commands.RemovePanelInput{PanelID: panelID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderPanels(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderPanelsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshPanel(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshPanelInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
