package api

import (
	"net/http"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/audit"
	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/service"
	"github.com/darmiel/voxauth/internal/tasks"
)

type Server struct {
	provider    *service.TokenProvider
	auditor     core.Auditor
	tokenStore  core.TokenStore
	taskManager *tasks.Manager
	defaults    config.DefaultsConfig
}

func NewServer(
	provider *service.TokenProvider,
	auditor core.Auditor,
	tokenStore core.TokenStore,
	taskManager *tasks.Manager,
	defaults config.DefaultsConfig,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Server{
		provider:    provider,
		auditor:     auditor,
		tokenStore:  tokenStore,
		taskManager: taskManager,
		defaults:    defaults,
	}
}

// Routes returns the API handler. Admin routes are only mounted if adminSigningKey is set.
func (s *Server) Routes(adminSigningKey []byte) http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// issuing endpoint
	mux.HandleFunc("POST "+TokenRoute, s.handleToken)
	mux.HandleFunc("POST "+ResolveTokenRoute, s.handleResolve)

	if len(adminSigningKey) > 0 {
		adminMux := http.NewServeMux()
		adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
		adminMux.HandleFunc("GET "+ListActiveTokensRoute, s.handleAdminTokens)
		adminMux.HandleFunc("GET "+ListTasksRoute, s.handleListTasks)
		adminMux.HandleFunc("POST "+TriggerTaskRoute, s.handleTriggerTask)
		adminMux.HandleFunc("GET "+LogsForTaskRoute, s.handleTaskLogs)
		mux.Handle(AdminParent, middleware.AdminAuth(adminSigningKey)(adminMux))
	}

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
