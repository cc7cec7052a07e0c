// internal/service/automation_service.go
package service

import (
	"time"

	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

type AutomationService struct {
	Store         store.Store
	Notifications *NotificationService
	Reports       *ReportService
}

// List returns all configured automations.
func (s *AutomationService) List() ([]store.Record, error) {
	return s.Store.Fetch(model.CollectionAutomations, nil)
}

// Create stores a new automation rule, enabled by default.
func (s *AutomationService) Create(name, triggerType string, condition map[string]any, actions []any) (store.Record, error) {
	if condition == nil {
		condition = map[string]any{}
	}
	if actions == nil {
		actions = []any{}
	}

	rec := store.Record{
		"name":           name,
		"is_enabled":     true,
		"trigger_type":   triggerType,
		"condition_json": condition,
		"actions_json":   actions,
		"created_at":     time.Now().UTC().Format(time.RFC3339),
	}
	return s.Store.Insert(model.CollectionAutomations, rec)
}

// Toggle enables or disables an automation. Missing id is a soft no-op.
func (s *AutomationService) Toggle(automationID string, enabled bool) (store.Record, error) {
	return s.Store.Update(model.CollectionAutomations, automationID, store.Record{"is_enabled": enabled})
}

// RunTrigger executes every enabled automation matching the trigger type
// and reports what ran. Action types: "whatsapp" sends an alert to the
// action's target number, "email_report" mails the weekly summary.
func (s *AutomationService) RunTrigger(triggerType string) (map[string]any, error) {
	automations, err := s.List()
	if err != nil {
		return nil, err
	}

	executed := []any{}
	for _, auto := range automations {
		if auto["trigger_type"] != triggerType {
			continue
		}
		if enabled, _ := auto["is_enabled"].(bool); !enabled {
			continue
		}

		results := []any{}
		actions, _ := auto["actions_json"].([]any)
		for _, raw := range actions {
			action, _ := raw.(map[string]any)
			if action == nil {
				continue
			}
			to, _ := action["to"].(string)

			switch action["type"] {
			case "whatsapp":
				name, _ := auto["name"].(string)
				res := s.Notifications.SendWhatsAppMessage(to, "Automation Triggered: "+name)
				results = append(results, res)
			case "email_report":
				res, err := s.Reports.SendPeriodicMarketingReport(to, "weekly")
				if err != nil {
					return nil, err
				}
				results = append(results, res)
			}
		}

		executed = append(executed, map[string]any{
			"automation_id": auto["id"],
			"name":          auto["name"],
			"results":       results,
		})
	}

	return map[string]any{"status": "success", "executed": executed}, nil
}
