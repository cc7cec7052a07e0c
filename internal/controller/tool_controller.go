// internal/controller/tool_controller.go
package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/ai"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	"github.com/unclebandit/marketinghub-backend/internal/config"
	appErrors "github.com/unclebandit/marketinghub-backend/internal/errors"
	"github.com/unclebandit/marketinghub-backend/internal/service"
)

// Tool is one externally invocable operation: a name, a JSON-schema
// description of its input, and the handler that runs it.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`

	handler func(ctx context.Context, args map[string]any) (any, error)
}

// ToolController exposes the tool registry over HTTP:
//
//	GET  /tools         list tool definitions
//	POST /tools/{name}  invoke a tool with a JSON argument object
type ToolController struct {
	Auth          *auth.Service
	Campaigns     *service.CampaignService
	Tasks         *service.TaskService
	Assets        *service.AssetService
	Activity      *activity.Logger
	Dashboard     *service.DashboardService
	Reports       *service.ReportService
	Notifications *service.NotificationService
	Automations   *service.AutomationService
	Assistant     *ai.Assistant

	Cfg       config.Config
	StoreMode string
	Log       *zap.SugaredLogger

	tools []Tool
	index map[string]*Tool
}

// Routes mounts the tool surface on the router.
func (c *ToolController) Routes(r chi.Router) {
	c.buildRegistry()
	r.Get("/tools", c.ListTools)
	r.Post("/tools/{name}", c.InvokeTool)
}

func (c *ToolController) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": c.tools})
}

func (c *ToolController) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tool, ok := c.index[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown tool: " + name})
		return
	}

	args := map[string]any{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unreadable body"})
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body: " + err.Error()})
			return
		}
	}

	result, err := tool.handler(r.Context(), args)
	if err != nil {
		c.writeError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (c *ToolController) writeError(w http.ResponseWriter, tool string, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsPermissionDenied(err):
		status = http.StatusForbidden
	case appErrors.IsInvalidArgument(err):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		c.Log.Errorw("tool invocation failed", "tool", tool, "error", err)
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// catalog renders the registry as context for the dev assistant tool.
func (c *ToolController) catalog() string {
	var b strings.Builder
	for _, t := range c.tools {
		b.WriteString(t.Name)
		b.WriteString(": ")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// ---------------------- argument helpers ----------------------

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", appErrors.NewInvalidArgument(key, "required string")
	}
	return v, nil
}

func optString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func optStringDefault(args map[string]any, key, fallback string) string {
	if v := optString(args, key); v != "" {
		return v
	}
	return fallback
}

// optInt tolerates the float64 that encoding/json produces for numbers.
func optInt(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func requireBool(args map[string]any, key string) (bool, error) {
	v, ok := args[key].(bool)
	if !ok {
		return false, appErrors.NewInvalidArgument(key, "required boolean")
	}
	return v, nil
}

func requireStringList(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key].([]any)
	if !ok {
		return nil, appErrors.NewInvalidArgument(key, "required array of strings")
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s, ok := e.(string)
		if !ok {
			return nil, appErrors.NewInvalidArgument(key, "required array of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func requireMap(args map[string]any, key string) (map[string]any, error) {
	v, ok := args[key].(map[string]any)
	if !ok {
		return nil, appErrors.NewInvalidArgument(key, "required object")
	}
	return v, nil
}

func optMap(args map[string]any, key string) map[string]any {
	v, _ := args[key].(map[string]any)
	return v
}

func optList(args map[string]any, key string) []any {
	v, _ := args[key].([]any)
	return v
}
