// internal/service/asset_service.go
package service

import (
	"time"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	appErrors "github.com/unclebandit/marketinghub-backend/internal/errors"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

type AssetService struct {
	Store    store.Store
	Auth     *auth.Service
	Activity *activity.Logger
}

// List fetches assets with the given status, defaulting to "pending".
func (s *AssetService) List(status string) ([]store.Record, error) {
	if status == "" {
		status = model.AssetStatusPending
	}
	return s.Store.Fetch(model.CollectionAssets, store.Filters{"status": status})
}

// Upload records a new asset awaiting review. Any principal may upload,
// known or unknown; there is no role gate here.
func (s *AssetService) Upload(requesterEmail, fileURL, description, relatedCampaignID string) (store.Record, error) {
	rec := store.Record{
		"requester_email":     requesterEmail,
		"file_url":            fileURL,
		"description":         description,
		"related_campaign_id": relatedCampaignID,
		"status":              model.AssetStatusPending,
		"created_at":          time.Now().UTC().Format(time.RFC3339),
	}

	result, err := s.Store.Insert(model.CollectionAssets, rec)
	if err != nil {
		return nil, err
	}

	s.Activity.BestEffort(requesterEmail, model.ActionUploadAsset, "asset",
		stringField(result, "id"), map[string]any{"url": fileURL})

	return result, nil
}

// Review approves or rejects a pending asset. Admin/Manager only, and the
// decision is constrained at this boundary: anything other than approved
// or rejected is an invalid argument. Missing id is a soft no-op.
func (s *AssetService) Review(assetID, reviewerEmail, decision, notes string) (store.Record, error) {
	if err := s.Auth.RequireRole(reviewerEmail, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}

	if decision != model.AssetStatusApproved && decision != model.AssetStatusRejected {
		return nil, appErrors.NewInvalidArgument("decision", "must be approved or rejected")
	}

	patch := store.Record{
		"status":         decision,
		"reviewer_email": reviewerEmail,
		"review_notes":   notes,
		"reviewed_at":    time.Now().UTC().Format(time.RFC3339),
	}
	result, err := s.Store.Update(model.CollectionAssets, assetID, patch)
	if err != nil {
		return nil, err
	}

	if result != nil {
		s.Activity.BestEffort(reviewerEmail, model.ActionReviewAsset, "asset",
			assetID, map[string]any{"decision": decision})
	}

	return result, nil
}
