package api

import (
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/internal/api/presenter"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/service"
	"github.com/darmiel/voxauth/pkg/client"
)

// maxExpirationSeconds is the largest expiration that fits a time.Duration.
const maxExpirationSeconds = math.MaxInt64 / int64(time.Second)

// handleToken serves the issuing endpoint contract: a built TokenRequest in, a TokenResponse out.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var req core.TokenRequest
	if err := DecodePayload(w, r, &req); err != nil {
		logger.Warn().Err(err).Msg("failed to decode token request")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := s.provider.Relay(ctx, req)
	if err != nil {
		presenter.Err(w, r, err, "token issuance failed")
		return
	}

	presenter.JSON(w, r, result.Response, http.StatusOK)
}

// handleResolve builds the request from identity URIs before fetching the token.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload client.ResolveRequest
	if err := DecodePayload(w, r, &payload); err != nil {
		logger.Warn().Err(err).Msg("failed to decode resolve request")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Expiration < 0 {
		presenter.Error(w, r, "expiration must not be negative", http.StatusBadRequest)
		return
	}
	if payload.Expiration > maxExpirationSeconds {
		presenter.Error(w, r, "expiration is too large", http.StatusBadRequest)
		return
	}

	params := service.TokenParams{
		Issuer:     payload.Issuer,
		Expiration: time.Duration(payload.Expiration) * time.Second,
		TargetURI:  payload.TargetURI,
		Action:     payload.Action,
		ChannelURI: payload.ChannelURI,
		FromURI:    payload.FromURI,
		Realm:      payload.Realm,
	}
	if params.Issuer == "" {
		params.Issuer = s.defaults.Issuer
	}
	if params.Realm == "" {
		params.Realm = s.defaults.Realm
	}
	if params.Expiration == 0 {
		params.Expiration = s.defaults.Expiration
	}

	result, err := s.provider.IssueToken(ctx, params)
	if err != nil {
		presenter.Err(w, r, err, "token issuance failed")
		return
	}

	presenter.JSON(w, r, result.Response, http.StatusOK)
}
