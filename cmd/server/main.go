// cmd/server/main.go
package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/activity"
	"github.com/unclebandit/marketinghub-backend/internal/ai"
	"github.com/unclebandit/marketinghub-backend/internal/auth"
	"github.com/unclebandit/marketinghub-backend/internal/config"
	"github.com/unclebandit/marketinghub-backend/internal/controller"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/queue"
	"github.com/unclebandit/marketinghub-backend/internal/scheduler"
	"github.com/unclebandit/marketinghub-backend/internal/service"
	"github.com/unclebandit/marketinghub-backend/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Infow("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	// Select the store once; mock mode is permanent for the process.
	st, mode := store.Open(cfg, log)

	authSvc := auth.NewService(st, log)
	auditLog := activity.NewLogger(st, log)

	mailer := notify.NewSMTPSender(cfg, log)
	whatsapp := notify.NewTwilioSender(cfg, log)

	var engine ai.Engine
	if cfg.HasAI() {
		e, err := ai.NewGenAIEngine(context.Background(), cfg.GenAIKey, cfg.GenAIModel)
		if err != nil {
			log.Warnw("⚠️ AI engine unavailable, mock payloads enabled", "error", err)
		} else {
			engine = e
		}
	} else {
		log.Infow("⚠️ GENAI_API_KEY missing, mock AI payloads enabled")
	}
	assistant := ai.NewAssistant(engine, log)

	campaignSvc := &service.CampaignService{Store: st, Auth: authSvc, Activity: auditLog}
	taskSvc := &service.TaskService{Store: st, Auth: authSvc, Activity: auditLog}
	assetSvc := &service.AssetService{Store: st, Auth: authSvc, Activity: auditLog}
	dashboardSvc := &service.DashboardService{Store: st}
	reportSvc := &service.ReportService{Store: st, Email: mailer}
	notificationSvc := &service.NotificationService{Store: st, Email: mailer, WhatsApp: whatsapp}
	automationSvc := &service.AutomationService{Store: st, Notifications: notificationSvc, Reports: reportSvc}

	// Notification jobs go through RabbitMQ when a broker is configured
	// (cmd/worker delivers them); otherwise an in-process subscriber sends
	// them directly.
	var q queue.Queue
	if cfg.HasAMQP() {
		pub, err := queue.DialAMQP(cfg.AMQPURL, log)
		if err != nil {
			log.Warnw("⚠️ broker unreachable, using in-memory queue", "error", err)
		} else {
			defer pub.Close()
			q = pub
		}
	}
	if q == nil {
		mem := queue.NewInMemoryQueue(log)
		queue.StartEmailSubscriber(mem, mailer, log)
		q = mem
	}

	if cfg.SchedulerEnabled {
		sched := scheduler.New(st, reportSvc, auditLog, q, log)
		if err := sched.Start(); err != nil {
			log.Fatalw("failed to start scheduler", "error", err)
		}
		defer sched.Stop()
	} else {
		log.Infow("scheduler disabled (ENABLE_SCHEDULER != true)")
	}

	toolController := &controller.ToolController{
		Auth:          authSvc,
		Campaigns:     campaignSvc,
		Tasks:         taskSvc,
		Assets:        assetSvc,
		Activity:      auditLog,
		Dashboard:     dashboardSvc,
		Reports:       reportSvc,
		Notifications: notificationSvc,
		Automations:   automationSvc,
		Assistant:     assistant,
		Cfg:           cfg,
		StoreMode:     mode,
		Log:           log,
	}

	r := chi.NewRouter()
	toolController.Routes(r)

	log.Infow("🚀 server running", "port", cfg.Port, "store_mode", mode)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
