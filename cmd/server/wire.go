// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"lead_capture_backend/internal/app"
	"lead_capture_backend/internal/auth"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/jobs"
	"lead_capture_backend/internal/lead"
	"lead_capture_backend/internal/pages"
	"lead_capture_backend/internal/platform/database"
	"lead_capture_backend/internal/platform/logger"
	"lead_capture_backend/internal/session"
	"lead_capture_backend/internal/shared"
	"lead_capture_backend/internal/webhook"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Session + OAuth
		session.NewService,
		wire.Bind(new(shared.SessionService), new(*session.Service)),
		auth.NewOAuthService,
		auth.NewHandler,

		// Lead capture
		lead.NewGORMRepository,
		lead.NewService,
		wire.Bind(new(lead.Service), new(*lead.ServiceImplementation)),
		lead.NewHandler,
		webhook.NewHTTPNotifier,
		wire.Bind(new(webhook.Notifier), new(*webhook.HTTPNotifier)),

		// Pages + Jobs
		pages.NewHandler,
		jobs.NewLeadDigestJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
