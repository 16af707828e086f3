package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/internal/api/presenter"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/tasks"
)

const defaultAuditLimit = 50

// handleAdminAudit returns the latest audit entries, optionally filtered.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	reader, ok := s.auditor.(core.AuditReader)
	if !ok {
		presenter.Error(w, r, "configured auditor does not support reading", http.StatusNotImplemented)
		return
	}

	q := r.URL.Query()
	limit := defaultAuditLimit
	if limitStr := q.Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	filterCorrelationID := q.Get("correlation_id")
	filterUsername := q.Get("username")
	filterFingerprint := q.Get("fingerprint")

	var (
		entries []core.AuditEntry
		err     error
	)
	if filterCorrelationID != "" || filterUsername != "" || filterFingerprint != "" {
		entries, err = reader.Find(func(entry core.AuditEntry) bool {
			if filterCorrelationID != "" && entry.ID != filterCorrelationID {
				return false
			}
			if filterUsername != "" && entry.Username != filterUsername {
				return false
			}
			if filterFingerprint != "" && entry.TokenFingerprint != filterFingerprint {
				return false
			}
			return true
		}, limit)
	} else {
		entries, err = reader.GetRecent(limit)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}

// handleAdminTokens returns the metadata of all unexpired tokens.
func (s *Server) handleAdminTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokens, err := s.tokenStore.ListActive(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve active tokens")
		presenter.Error(w, r, "failed to retrieve active tokens", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, tokens, http.StatusOK)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, s.taskManager.ListStatus(), http.StatusOK)
}

func (s *Server) handleTriggerTask(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.taskManager.Trigger(name); err != nil {
		taskError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("task", name).Msg("task triggered")
	presenter.JSON(w, r, map[string]string{"status": "triggered"}, http.StatusAccepted)
}

func (s *Server) handleTaskLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.taskManager.GetLogs(r.PathValue("name"))
	if err != nil {
		taskError(w, r, err)
		return
	}
	presenter.JSON(w, r, logs, http.StatusOK)
}

func taskError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound tasks.TaskNotFoundError
	if errors.As(err, &notFound) {
		presenter.Error(w, r, err.Error(), http.StatusNotFound)
		return
	}
	presenter.Error(w, r, err.Error(), http.StatusInternalServerError)
}
