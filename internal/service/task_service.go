// internal/service/task_service.go
package service

import (
	"time"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	"github.com/unclebandit/marketinghub-backend/internal/model"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

type TaskService struct {
	Store    store.Store
	Auth     *auth.Service
	Activity *activity.Logger
}

// List applies row-level narrowing rather than an outright deny:
//   - a "team" caller always sees only their own tasks, whatever assignee
//     filter they requested;
//   - admin/manager callers get the requested assignee filter as-is;
//   - with no caller email at all, the requested filter is honored with no
//     role check. That permissive default is intentional and preserved.
func (s *TaskService) List(assigneeEmail, status, callerEmail string) ([]store.Record, error) {
	filters := store.Filters{}
	if status != "" {
		filters["status"] = status
	}

	if callerEmail != "" {
		if s.Auth.RoleOf(callerEmail) == model.RoleTeam {
			filters["assignee"] = callerEmail
		} else if assigneeEmail != "" {
			filters["assignee"] = assigneeEmail
		}
	} else if assigneeEmail != "" {
		filters["assignee"] = assigneeEmail
	}

	return s.Store.Fetch(model.CollectionTasks, filters)
}

// Create inserts a new task with status "todo". Admin/Manager only.
func (s *TaskService) Create(title, assigneeEmail, dueDate, creatorEmail, relatedCampaignID string) (store.Record, error) {
	if err := s.Auth.RequireRole(creatorEmail, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}

	rec := store.Record{
		"title":               title,
		"assignee":            assigneeEmail,
		"due_date":            dueDate,
		"related_campaign_id": relatedCampaignID,
		"status":              model.TaskStatusTodo,
		"created_at":          time.Now().UTC().Format(time.RFC3339),
	}

	result, err := s.Store.Insert(model.CollectionTasks, rec)
	if err != nil {
		return nil, err
	}

	s.Activity.BestEffort(creatorEmail, model.ActionCreateTask, "task",
		stringField(result, "id"), map[string]any{"title": title})

	return result, nil
}

// UpdateStatus writes any status value, same open-string policy as
// campaigns. Admin/Manager only; missing id is a soft no-op.
func (s *TaskService) UpdateStatus(taskID, newStatus, userEmail string) (store.Record, error) {
	if err := s.Auth.RequireRole(userEmail, model.RoleAdmin, model.RoleManager); err != nil {
		return nil, err
	}

	result, err := s.Store.Update(model.CollectionTasks, taskID, store.Record{"status": newStatus})
	if err != nil {
		return nil, err
	}

	if result != nil {
		s.Activity.BestEffort(userEmail, model.ActionUpdateStatus, "task",
			taskID, map[string]any{"new_status": newStatus})
	}

	return result, nil
}
