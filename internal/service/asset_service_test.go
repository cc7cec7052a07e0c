package service_test

import (
	"testing"

	appErrors "github.com/unclebandit/marketinghub-backend/internal/errors"
	"github.com/unclebandit/marketinghub-backend/internal/service"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func newAssetService() (*service.AssetService, *store.Mock) {
	m, authSvc, auditLog := seededDeps()
	return &service.AssetService{Store: m, Auth: authSvc, Activity: auditLog}, m
}

func TestListAssetsDefaultsToPending(t *testing.T) {
	svc, _ := newAssetService()

	assets, err := svc.List("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(assets) != 1 || assets[0]["status"] != "pending" {
		t.Errorf("expected the seeded pending asset, got %v", assets)
	}
}

func TestUploadAssetHasNoRoleGate(t *testing.T) {
	svc, m := newAssetService()

	created, err := svc.Upload("stranger@example.com",
		"https://cdn.example.com/banner.png", "Banner", "1")
	if err != nil {
		t.Fatalf("upload by an unknown principal must succeed: %v", err)
	}
	if created["status"] != "pending" {
		t.Errorf("uploads start pending, got %v", created["status"])
	}

	audits := auditEntries(m, "upload_asset")
	if len(audits) != 1 || audits[0]["actor_email"] != "stranger@example.com" {
		t.Errorf("expected 1 upload_asset audit entry, got %v", audits)
	}
}

func TestReviewAssetApprove(t *testing.T) {
	svc, m := newAssetService()

	reviewed, err := svc.Review("1", "manager@example.com", "approved", "looks good")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed["status"] != "approved" {
		t.Errorf("expected approved, got %v", reviewed["status"])
	}
	if reviewed["reviewer_email"] != "manager@example.com" || reviewed["review_notes"] != "looks good" {
		t.Errorf("review fields not recorded: %v", reviewed)
	}
	if ts, _ := reviewed["reviewed_at"].(string); ts == "" {
		t.Error("expected reviewed_at to be set")
	}

	audits := auditEntries(m, "review_asset")
	if len(audits) != 1 {
		t.Errorf("expected 1 review_asset audit entry, got %d", len(audits))
	}
}

func TestReviewAssetDeniedForTeamLeavesStatusUnchanged(t *testing.T) {
	svc, m := newAssetService()

	_, err := svc.Review("1", "team@example.com", "approved", "")
	if !appErrors.IsPermissionDenied(err) {
		t.Fatalf("expected permission denied, got %v", err)
	}

	assets, _ := m.Fetch("assets", store.Filters{"id": "1"})
	if assets[0]["status"] != "pending" {
		t.Errorf("denied review must leave the asset pending, got %v", assets[0]["status"])
	}
	if len(auditEntries(m, "review_asset")) != 0 {
		t.Error("denied review must not be audited")
	}
}

func TestReviewAssetRejectsBadDecision(t *testing.T) {
	svc, m := newAssetService()

	_, err := svc.Review("1", "manager@example.com", "maybe", "")
	if !appErrors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	assets, _ := m.Fetch("assets", store.Filters{"id": "1"})
	if assets[0]["status"] != "pending" {
		t.Errorf("invalid decision must not mutate the asset, got %v", assets[0]["status"])
	}
}

func TestReviewAssetMissingIDIsSoftNoOp(t *testing.T) {
	svc, m := newAssetService()

	reviewed, err := svc.Review("999", "admin@example.com", "rejected", "")
	if err != nil {
		t.Fatalf("missing id must not fail: %v", err)
	}
	if reviewed != nil {
		t.Errorf("expected nil for missing id, got %v", reviewed)
	}
	if len(auditEntries(m, "review_asset")) != 0 {
		t.Error("a no-op review must not be audited")
	}
}
