// internal/model/model.go
package model

// Collection names understood by the row store.
const (
	CollectionUsers       = "users"
	CollectionCampaigns   = "campaigns"
	CollectionTasks       = "tasks"
	CollectionAssets      = "assets"
	CollectionActivityLog = "activity_log"
	CollectionAutomations = "automations"
)

// Collections lists every known collection. The Postgres store uses it as
// its table whitelist; anything else resolves to an empty result set.
var Collections = []string{
	CollectionUsers,
	CollectionCampaigns,
	CollectionTasks,
	CollectionAssets,
	CollectionActivityLog,
	CollectionAutomations,
}

// User roles. RoleUnknown is the sentinel for absent users or any role
// value outside the closed set; it satisfies no role check.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleTeam    = "team"
	RoleUnknown = "unknown"
)

// Campaign statuses assigned by this service. Campaign status is an open
// string field: update_campaign_status writes any caller-supplied value.
const (
	CampaignStatusPlanned  = "planned"
	CampaignStatusActive   = "active"
	CampaignStatusComplete = "completed"
	CampaignStatusArchived = "archived"
)

// Task statuses assigned by this service (open string field, same policy
// as campaigns).
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Asset review states. Unlike campaigns and tasks these are closed at the
// tool boundary: review accepts only approved or rejected.
const (
	AssetStatusPending  = "pending"
	AssetStatusApproved = "approved"
	AssetStatusRejected = "rejected"
)

// Audit trail action names.
const (
	ActionCreateCampaign  = "create_campaign"
	ActionUpdateStatus    = "update_status"
	ActionCreateTask      = "create_task"
	ActionUploadAsset     = "upload_asset"
	ActionReviewAsset     = "review_asset"
	ActionArchiveCampaign = "archive_campaign"
)

// SchedulerPrincipal is the actor recorded for mutations performed by the
// background jobs rather than a caller.
const SchedulerPrincipal = "scheduler@system"
