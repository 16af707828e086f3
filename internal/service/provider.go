package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/audit"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/policy"
)

const (
	AuditActionIssue = "token.issue"
	AuditActionRelay = "token.relay"
)

// TokenProvider builds token requests, checks them against the admission policy and fetches
// tokens from the configured issuer. It is safe for concurrent use.
type TokenProvider struct {
	issuer  core.TokenIssuer
	auditor core.Auditor
	store   core.TokenStore
	policy  *policy.Policy

	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenProvider wires a provider. pol may be nil to admit every request.
func NewTokenProvider(
	issuer core.TokenIssuer,
	auditor core.Auditor,
	store core.TokenStore,
	pol *policy.Policy,
	defaultTTL time.Duration,
) *TokenProvider {
	return &TokenProvider{
		issuer:     issuer,
		auditor:    auditor,
		store:      store,
		policy:     pol,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// IssuerName returns the name of the issuer tokens are fetched from.
func (s *TokenProvider) IssuerName() string {
	return s.issuer.Name()
}

// GetToken builds the request for p and returns only the signed token.
func (s *TokenProvider) GetToken(ctx context.Context, p TokenParams) (string, error) {
	res, err := s.IssueToken(ctx, p)
	if err != nil {
		return "", err
	}
	return res.Response.AccessToken, nil
}

// IssueToken builds the request for p, fetches a token and records it.
func (s *TokenProvider) IssueToken(ctx context.Context, p TokenParams) (*IssueResponse, error) {
	entry := s.newAuditEntry(ctx, AuditActionIssue)
	entry.Issuer = p.Issuer
	entry.Realm = p.Realm
	entry.RequestType = p.Action
	defer s.logAudit(ctx, &entry)

	req, err := BuildTokenRequest(p)
	if err != nil {
		entry.Error = err.Error()
		var unknownType core.UnknownChannelTypeError
		if errors.As(err, &unknownType) {
			return nil, httpError(http.StatusInternalServerError, err)
		}
		return nil, httpError(http.StatusBadRequest, err)
	}
	entry.Username = req.Username
	entry.ChannelID = req.ChannelID
	entry.TargetUsername = req.TargetUsername

	return s.issue(ctx, *req, p.Issuer, p.Realm, p.Expiration, &entry)
}

// Relay fetches a token for an already built request.
func (s *TokenProvider) Relay(ctx context.Context, req core.TokenRequest) (*IssueResponse, error) {
	entry := s.newAuditEntry(ctx, AuditActionRelay)
	entry.RequestType = req.Type
	entry.Username = req.Username
	entry.ChannelID = req.ChannelID
	entry.TargetUsername = req.TargetUsername
	defer s.logAudit(ctx, &entry)

	if isBlank(req.Username) {
		err := fmt.Errorf("%w: username is required", core.ErrInvalidFromIdentity)
		entry.Error = err.Error()
		return nil, httpError(http.StatusBadRequest, err)
	}

	return s.issue(ctx, req, "", "", 0, &entry)
}

func (s *TokenProvider) issue(
	ctx context.Context,
	req core.TokenRequest,
	issuer, realm string,
	expiration time.Duration,
	entry *core.AuditEntry,
) (*IssueResponse, error) {
	logger := log.Ctx(ctx).With().
		Str("issuer", s.issuer.Name()).
		Str("type", req.Type.String()).
		Str("username", req.Username).
		Logger()

	allowed, err := s.policy.Allow(policy.NewEnv(req, issuer, realm))
	if err != nil {
		entry.Error = err.Error()
		return nil, httpError(http.StatusInternalServerError, err)
	}
	if !allowed {
		logger.Warn().Str("policy", s.policy.String()).Msg("request denied by policy")
		entry.Error = core.ErrPolicyDenied.Error()
		return nil, httpError(http.StatusForbidden, core.ErrPolicyDenied)
	}

	resp, err := s.issuer.Issue(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("issuer failed")
		entry.Error = err.Error()
		return nil, upstreamError(fmt.Errorf("issuing token: %w", err))
	}

	issuedAt := s.now()
	meta := core.TokenMetadata{
		CorrelationID: entry.ID,
		Username:      req.Username,
		Action:        req.Type,
		ChannelID:     req.ChannelID,
		Issuer:        s.issuer.Name(),
		Fingerprint:   audit.Fingerprint(resp.AccessToken),
		IssuedAt:      issuedAt,
		ExpiresAt:     s.expiresAt(resp.AccessToken, issuedAt, expiration),
	}
	if err := s.store.Save(ctx, meta); err != nil {
		// the token is valid regardless, so only warn
		logger.Warn().Err(err).Msg("failed to save token metadata")
	}

	entry.Granted = true
	entry.TokenFingerprint = meta.Fingerprint

	logger.Info().
		Str("fingerprint", meta.Fingerprint).
		Time("expires_at", meta.ExpiresAt).
		Msg("token issued")

	return &IssueResponse{
		Request:  &req,
		Response: resp,
		Metadata: meta,
	}, nil
}

// expiresAt reads the exp claim of token without verifying it.
// Opaque tokens fall back to the requested or default lifetime.
func (s *TokenProvider) expiresAt(token string, issuedAt time.Time, requested time.Duration) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if requested > 0 {
		return issuedAt.Add(requested)
	}
	return issuedAt.Add(s.defaultTTL)
}

func (s *TokenProvider) newAuditEntry(ctx context.Context, action string) core.AuditEntry {
	id := middleware.CorrelationCtx(ctx)
	if id == "" {
		id = middleware.NewCorrelationID()
	}
	return core.AuditEntry{
		ID:     id,
		Time:   s.now(),
		Action: action,
	}
}

func (s *TokenProvider) logAudit(ctx context.Context, entry *core.AuditEntry) {
	if err := s.auditor.Log(*entry); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to write audit log")
	}
}
