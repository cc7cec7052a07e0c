// internal/service/campaign_service.go
package service

import (
	"time"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

type CampaignService struct {
	Store    store.Store
	Auth     *auth.Service
	Activity *activity.Logger
}

// List fetches campaigns matching the given status. The status defaults to
// "active" when empty.
func (s *CampaignService) List(status string) ([]store.Record, error) {
	if status == "" {
		status = model.CampaignStatusActive
	}
	return s.Store.Fetch(model.CollectionCampaigns, store.Filters{"status": status})
}

// Create inserts a new campaign with status "planned". Admin/Manager only;
// the owner is the acting principal.
func (s *CampaignService) Create(name string, channel []string, startDate, endDate, ownerEmail string) (store.Record, error) {
	if err := s.Auth.RequireRole(ownerEmail, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}

	// Arrays are stored as []any so both backends hand back the same shape.
	channels := make([]any, len(channel))
	for i, ch := range channel {
		channels[i] = ch
	}

	rec := store.Record{
		"name":        name,
		"channel":     channels,
		"start_date":  startDate,
		"end_date":    endDate,
		"owner_email": ownerEmail,
		"status":      model.CampaignStatusPlanned,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	}

	result, err := s.Store.Insert(model.CollectionCampaigns, rec)
	if err != nil {
		return nil, err
	}

	s.Activity.BestEffort(ownerEmail, model.ActionCreateCampaign, "campaign",
		stringField(result, "id"), map[string]any{"name": name})

	return result, nil
}

// UpdateStatus writes any caller-supplied status value unconditionally.
// There is deliberately no transition graph: campaign status is an open
// string field, not a closed enum. Admin/Manager only. A missing id is a
// soft no-op returning nil.
func (s *CampaignService) UpdateStatus(campaignID, newStatus, userEmail string) (store.Record, error) {
	if err := s.Auth.RequireRole(userEmail, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}

	patch := store.Record{
		"status":     newStatus,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	result, err := s.Store.Update(model.CollectionCampaigns, campaignID, patch)
	if err != nil {
		return nil, err
	}

	if result != nil {
		s.Activity.BestEffort(userEmail, model.ActionUpdateStatus, "campaign",
			campaignID, map[string]any{"new_status": newStatus})
	}

	return result, nil
}

func stringField(rec store.Record, key string) string {
	if rec == nil {
		return "unknown"
	}
	if v, ok := rec[key].(string); ok {
		return v
	}
	return "unknown"
}
