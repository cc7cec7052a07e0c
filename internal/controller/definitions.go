// internal/controller/definitions.go
package controller

import (
	"context"
)

func schema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str() map[string]any   { return map[string]any{"type": "string"} }
func num() map[string]any   { return map[string]any{"type": "integer"} }
func boolT() map[string]any { return map[string]any{"type": "boolean"} }
func obj() map[string]any   { return map[string]any{"type": "object"} }

func strArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func anyArray() map[string]any {
	return map[string]any{"type": "array"}
}

// buildRegistry declares every tool: name, description, input schema, and
// the handler dispatching into the service layer. Tool names and argument
// keys match the published contract exactly.
func (c *ToolController) buildRegistry() {
	c.tools = []Tool{
		// ---- auth ----
		{
			Name:        "get_user_by_email",
			Description: "Get user details by email",
			InputSchema: schema(map[string]any{"email": str()}, "email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				email, err := requireString(args, "email")
				if err != nil {
					return nil, err
				}
				return c.Auth.UserByEmail(email)
			},
		},
		{
			Name:        "get_user_role",
			Description: "Get the role of a user",
			InputSchema: schema(map[string]any{"email": str()}, "email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				email, err := requireString(args, "email")
				if err != nil {
					return nil, err
				}
				return c.Auth.RoleOf(email), nil
			},
		},
		{
			Name:        "list_team_members",
			Description: "List all team members",
			InputSchema: schema(map[string]any{}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Auth.ListTeamMembers()
			},
		},

		// ---- campaigns ----
		{
			Name:        "list_campaigns",
			Description: "List campaigns with the given status (default active)",
			InputSchema: schema(map[string]any{"status": str()}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Campaigns.List(optString(args, "status"))
			},
		},
		{
			Name:        "create_campaign",
			Description: "Create a new campaign (admin/manager)",
			InputSchema: schema(map[string]any{
				"name":        str(),
				"channel":     strArray(),
				"start_date":  str(),
				"end_date":    str(),
				"owner_email": str(),
			}, "name", "channel", "start_date", "end_date", "owner_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				name, err := requireString(args, "name")
				if err != nil {
					return nil, err
				}
				channel, err := requireStringList(args, "channel")
				if err != nil {
					return nil, err
				}
				startDate, err := requireString(args, "start_date")
				if err != nil {
					return nil, err
				}
				endDate, err := requireString(args, "end_date")
				if err != nil {
					return nil, err
				}
				owner, err := requireString(args, "owner_email")
				if err != nil {
					return nil, err
				}
				return c.Campaigns.Create(name, channel, startDate, endDate, owner)
			},
		},
		{
			Name:        "update_campaign_status",
			Description: "Update the status of a campaign (admin/manager)",
			InputSchema: schema(map[string]any{
				"campaign_id": str(),
				"new_status":  str(),
				"user_email":  str(),
			}, "campaign_id", "new_status", "user_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "campaign_id")
				if err != nil {
					return nil, err
				}
				newStatus, err := requireString(args, "new_status")
				if err != nil {
					return nil, err
				}
				email, err := requireString(args, "user_email")
				if err != nil {
					return nil, err
				}
				return c.Campaigns.UpdateStatus(id, newStatus, email)
			},
		},

		// ---- tasks ----
		{
			Name:        "list_tasks",
			Description: "List tasks; team callers only see their own",
			InputSchema: schema(map[string]any{
				"assignee_email": str(),
				"status":         str(),
				"user_email":     str(),
			}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Tasks.List(optString(args, "assignee_email"),
					optString(args, "status"), optString(args, "user_email"))
			},
		},
		{
			Name:        "create_task",
			Description: "Create a new task (admin/manager)",
			InputSchema: schema(map[string]any{
				"title":               str(),
				"assignee_email":      str(),
				"due_date":            str(),
				"creator_email":       str(),
				"related_campaign_id": str(),
			}, "title", "assignee_email", "due_date", "creator_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				title, err := requireString(args, "title")
				if err != nil {
					return nil, err
				}
				assignee, err := requireString(args, "assignee_email")
				if err != nil {
					return nil, err
				}
				dueDate, err := requireString(args, "due_date")
				if err != nil {
					return nil, err
				}
				creator, err := requireString(args, "creator_email")
				if err != nil {
					return nil, err
				}
				return c.Tasks.Create(title, assignee, dueDate,
					creator, optString(args, "related_campaign_id"))
			},
		},
		{
			Name:        "update_task_status",
			Description: "Update the status of a task (admin/manager)",
			InputSchema: schema(map[string]any{
				"task_id":    str(),
				"new_status": str(),
				"user_email": str(),
			}, "task_id", "new_status", "user_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "task_id")
				if err != nil {
					return nil, err
				}
				newStatus, err := requireString(args, "new_status")
				if err != nil {
					return nil, err
				}
				email, err := requireString(args, "user_email")
				if err != nil {
					return nil, err
				}
				return c.Tasks.UpdateStatus(id, newStatus, email)
			},
		},

		// ---- assets ----
		{
			Name:        "list_assets",
			Description: "List assets with the given status (default pending)",
			InputSchema: schema(map[string]any{"status": str()}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Assets.List(optString(args, "status"))
			},
		},
		{
			Name:        "upload_asset",
			Description: "Record an uploaded asset awaiting review",
			InputSchema: schema(map[string]any{
				"requester_email":     str(),
				"asset_url":           str(),
				"description":         str(),
				"related_campaign_id": str(),
			}, "requester_email", "asset_url", "description"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				requester, err := requireString(args, "requester_email")
				if err != nil {
					return nil, err
				}
				assetURL, err := requireString(args, "asset_url")
				if err != nil {
					return nil, err
				}
				description, err := requireString(args, "description")
				if err != nil {
					return nil, err
				}
				return c.Assets.Upload(requester, assetURL,
					description, optString(args, "related_campaign_id"))
			},
		},
		{
			Name:        "review_asset",
			Description: "Approve or reject an asset (admin/manager)",
			InputSchema: schema(map[string]any{
				"asset_id":       str(),
				"reviewer_email": str(),
				"decision":       str(),
				"notes":          str(),
			}, "asset_id", "reviewer_email", "decision"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "asset_id")
				if err != nil {
					return nil, err
				}
				reviewer, err := requireString(args, "reviewer_email")
				if err != nil {
					return nil, err
				}
				decision, err := requireString(args, "decision")
				if err != nil {
					return nil, err
				}
				return c.Assets.Review(id, reviewer, decision, optString(args, "notes"))
			},
		},

		// ---- activity ----
		{
			Name:        "log_activity",
			Description: "Append an entry to the activity log",
			InputSchema: schema(map[string]any{
				"actor_email": str(),
				"action":      str(),
				"entity_type": str(),
				"entity_id":   str(),
				"metadata":    obj(),
			}, "actor_email", "action", "entity_type", "entity_id"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				actor, err := requireString(args, "actor_email")
				if err != nil {
					return nil, err
				}
				action, err := requireString(args, "action")
				if err != nil {
					return nil, err
				}
				entityType, err := requireString(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireString(args, "entity_id")
				if err != nil {
					return nil, err
				}
				return c.Activity.Record(actor, action, entityType, entityID, optMap(args, "metadata"))
			},
		},
		{
			Name:        "list_activity",
			Description: "List activity log entries with optional filters",
			InputSchema: schema(map[string]any{
				"limit":       num(),
				"actor_email": str(),
				"entity_type": str(),
			}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				filters := map[string]any{}
				if v := optString(args, "actor_email"); v != "" {
					filters["actor_email"] = v
				}
				if v := optString(args, "entity_type"); v != "" {
					filters["entity_type"] = v
				}
				return c.Activity.List(optInt(args, "limit", 50), filters)
			},
		},

		// ---- dashboard ----
		{
			Name:        "marketing_snapshot",
			Description: "Marketing KPI snapshot",
			InputSchema: schema(map[string]any{}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Dashboard.MarketingSnapshot()
			},
		},
		{
			Name:        "channel_performance",
			Description: "Aggregated campaign counts per channel",
			InputSchema: schema(map[string]any{}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Dashboard.ChannelPerformance()
			},
		},

		// ---- notifications ----
		{
			Name:        "send_whatsapp_message",
			Description: "Send a WhatsApp message via Twilio",
			InputSchema: schema(map[string]any{
				"to_number":    str(),
				"message_body": str(),
			}, "to_number", "message_body"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				to, err := requireString(args, "to_number")
				if err != nil {
					return nil, err
				}
				body, err := requireString(args, "message_body")
				if err != nil {
					return nil, err
				}
				return c.Notifications.SendWhatsAppMessage(to, body), nil
			},
		},
		{
			Name:        "notify_campaign_status_change",
			Description: "WhatsApp the campaign owner about a status change",
			InputSchema: schema(map[string]any{
				"campaign_id": str(),
				"new_status":  str(),
			}, "campaign_id", "new_status"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "campaign_id")
				if err != nil {
					return nil, err
				}
				newStatus, err := requireString(args, "new_status")
				if err != nil {
					return nil, err
				}
				return c.Notifications.NotifyCampaignStatusChange(id, newStatus)
			},
		},
		{
			Name:        "notify_overdue_tasks",
			Description: "WhatsApp a manager about tasks requiring attention",
			InputSchema: schema(map[string]any{"manager_email": str()}, "manager_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				email, err := requireString(args, "manager_email")
				if err != nil {
					return nil, err
				}
				return c.Notifications.NotifyOverdueTasks(email)
			},
		},
		{
			Name:        "send_email_report",
			Description: "Send an email with text or HTML body",
			InputSchema: schema(map[string]any{
				"to_email":  str(),
				"subject":   str(),
				"body_text": str(),
				"body_html": str(),
			}, "to_email", "subject", "body_text"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				to, err := requireString(args, "to_email")
				if err != nil {
					return nil, err
				}
				subject, err := requireString(args, "subject")
				if err != nil {
					return nil, err
				}
				bodyText, err := requireString(args, "body_text")
				if err != nil {
					return nil, err
				}
				return c.Notifications.SendEmailReport(to, subject,
					bodyText, optString(args, "body_html")), nil
			},
		},
		{
			Name:        "send_campaign_update",
			Description: "WhatsApp a campaign status update to a number",
			InputSchema: schema(map[string]any{
				"campaign_id": str(),
				"to_number":   str(),
			}, "campaign_id", "to_number"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "campaign_id")
				if err != nil {
					return nil, err
				}
				to, err := requireString(args, "to_number")
				if err != nil {
					return nil, err
				}
				return c.Notifications.SendCampaignUpdate(id, to)
			},
		},
		{
			Name:        "send_email",
			Description: "Send an HTML email via SMTP",
			InputSchema: schema(map[string]any{
				"to_email":  str(),
				"subject":   str(),
				"html_body": str(),
			}, "to_email", "subject", "html_body"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				to, err := requireString(args, "to_email")
				if err != nil {
					return nil, err
				}
				subject, err := requireString(args, "subject")
				if err != nil {
					return nil, err
				}
				body, err := requireString(args, "html_body")
				if err != nil {
					return nil, err
				}
				return c.Notifications.SendEmail(to, subject, body), nil
			},
		},

		// ---- reports ----
		{
			Name:        "generate_dashboard_summary",
			Description: "Summary of key metrics for the dashboard",
			InputSchema: schema(map[string]any{"period": str()}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Reports.GenerateDashboardSummary(optStringDefault(args, "period", "daily"))
			},
		},
		{
			Name:        "send_periodic_marketing_report",
			Description: "Generate and email a marketing report",
			InputSchema: schema(map[string]any{
				"to_email": str(),
				"period":   str(),
			}, "to_email"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				to, err := requireString(args, "to_email")
				if err != nil {
					return nil, err
				}
				return c.Reports.SendPeriodicMarketingReport(to, optStringDefault(args, "period", "weekly"))
			},
		},

		// ---- automations ----
		{
			Name:        "list_automations",
			Description: "List all configured automations",
			InputSchema: schema(map[string]any{}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return c.Automations.List()
			},
		},
		{
			Name:        "create_automation",
			Description: "Create a new automation rule",
			InputSchema: schema(map[string]any{
				"name":           str(),
				"trigger_type":   str(),
				"condition_json": obj(),
				"actions_json":   anyArray(),
			}, "name", "trigger_type"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				name, err := requireString(args, "name")
				if err != nil {
					return nil, err
				}
				trigger, err := requireString(args, "trigger_type")
				if err != nil {
					return nil, err
				}
				return c.Automations.Create(name, trigger,
					optMap(args, "condition_json"), optList(args, "actions_json"))
			},
		},
		{
			Name:        "toggle_automation",
			Description: "Enable or disable an automation",
			InputSchema: schema(map[string]any{
				"automation_id": str(),
				"enabled":       boolT(),
			}, "automation_id", "enabled"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "automation_id")
				if err != nil {
					return nil, err
				}
				enabled, err := requireBool(args, "enabled")
				if err != nil {
					return nil, err
				}
				return c.Automations.Toggle(id, enabled)
			},
		},
		{
			Name:        "run_automation_trigger",
			Description: "Execute all enabled automations for a trigger type",
			InputSchema: schema(map[string]any{"trigger_type": str()}, "trigger_type"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				trigger, err := requireString(args, "trigger_type")
				if err != nil {
					return nil, err
				}
				return c.Automations.RunTrigger(trigger)
			},
		},

		// ---- system ----
		{
			Name:        "check_backend_config",
			Description: "Report which backend capabilities are configured",
			InputSchema: schema(map[string]any{}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return map[string]any{
					"mode":              c.StoreMode,
					"has_database":      c.Cfg.HasDatabase(),
					"has_whatsapp":      c.Cfg.HasWhatsApp(),
					"has_email":         c.Cfg.HasEmail(),
					"has_ai":            c.Cfg.HasAI(),
					"scheduler_enabled": c.Cfg.SchedulerEnabled,
				}, nil
			},
		},

		// ---- AI engine ----
		{
			Name:        "ai_campaign_review",
			Description: "Analyze a campaign and provide insights",
			InputSchema: schema(map[string]any{"campaign": obj()}, "campaign"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				campaign, err := requireMap(args, "campaign")
				if err != nil {
					return nil, err
				}
				return c.Assistant.CampaignReview(ctx, campaign), nil
			},
		},
		{
			Name:        "ai_generate_ideas",
			Description: "Generate creative marketing ideas for a topic",
			InputSchema: schema(map[string]any{
				"topic": str(),
				"count": num(),
			}, "topic"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				topic, err := requireString(args, "topic")
				if err != nil {
					return nil, err
				}
				return c.Assistant.GenerateIdeas(ctx, topic, optInt(args, "count", 5)), nil
			},
		},
		{
			Name:        "ai_generate_copy",
			Description: "Generate marketing copy in a given style",
			InputSchema: schema(map[string]any{
				"style":   str(),
				"details": obj(),
			}, "style"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				style, err := requireString(args, "style")
				if err != nil {
					return nil, err
				}
				details := optMap(args, "details")
				if details == nil {
					details = map[string]any{}
				}
				return c.Assistant.GenerateCopy(ctx, style, details), nil
			},
		},
		{
			Name:        "ai_marketing_calendar",
			Description: "Generate a marketing calendar",
			InputSchema: schema(map[string]any{
				"start_date": str(),
				"weeks":      num(),
			}, "start_date"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				start, err := requireString(args, "start_date")
				if err != nil {
					return nil, err
				}
				return c.Assistant.MarketingCalendar(ctx, start, optInt(args, "weeks", 4)), nil
			},
		},
		{
			Name:        "ai_dev_assistant",
			Description: "Answer developer questions about this service",
			InputSchema: schema(map[string]any{"question": str()}, "question"),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				question, err := requireString(args, "question")
				if err != nil {
					return nil, err
				}
				return c.Assistant.DevAssistant(ctx, question, c.catalog()), nil
			},
		},
	}

	c.index = make(map[string]*Tool, len(c.tools))
	for i := range c.tools {
		c.index[c.tools[i].Name] = &c.tools[i]
	}
}
