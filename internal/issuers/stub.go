package issuers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/identity"
)

const (
	TypeStub = "stub"

	DefaultChannelPrefix = "confctl"
	DefaultStubTTL       = 90 * time.Second
)

type StubIssuerConfig struct {
	// Issuer is the tenant namespace used in the rebuilt URIs and the iss claim.
	Issuer string `mapstructure:"issuer"`

	// Domain is the service domain used in the rebuilt URIs.
	Domain string `mapstructure:"domain"`

	ChannelPrefix string        `mapstructure:"channel_prefix"`
	Key           string        `mapstructure:"key"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// VoiceClaims are the claims of a voice service access token.
type VoiceClaims struct {
	Action string `json:"vxa"`
	Serial int64  `json:"vxi"`
	From   string `json:"f"`
	To     string `json:"t,omitempty"`
	jwt.RegisteredClaims
}

var _ core.TokenIssuer = (*StubIssuer)(nil)

// StubIssuer signs tokens locally with a shared key. It is meant for development
// against a local voice server.
type StubIssuer struct {
	name   string
	conf   StubIssuerConfig
	serial atomic.Int64
	now    func() time.Time
}

func NewStubIssuer(cfg config.IssuerConfig) (*StubIssuer, error) {
	var conf StubIssuerConfig
	if err := decodeConfig(cfg, &conf); err != nil {
		return nil, err
	}
	if conf.Issuer == "" {
		return nil, fmt.Errorf("stub issuer '%s': issuer is required", cfg.Name)
	}
	if conf.Domain == "" {
		return nil, fmt.Errorf("stub issuer '%s': domain is required", cfg.Name)
	}
	if conf.Key == "" {
		return nil, fmt.Errorf("stub issuer '%s': key is required", cfg.Name)
	}
	if conf.ChannelPrefix == "" {
		conf.ChannelPrefix = DefaultChannelPrefix
	}
	if conf.TTL <= 0 {
		conf.TTL = DefaultStubTTL
	}

	return &StubIssuer{
		name: cfg.Name,
		conf: conf,
		now:  time.Now,
	}, nil
}

func (s *StubIssuer) Name() string {
	return s.name
}

func (s *StubIssuer) Issue(_ context.Context, req core.TokenRequest) (*core.TokenResponse, error) {
	if req.Username == "" {
		return nil, errors.New("username is required")
	}

	from := identity.FormatParticipant("", s.conf.Issuer, req.Username, s.conf.Domain)

	var to string
	if req.ChannelID != "" {
		code, err := core.ChannelTypeCode(req.ChannelType)
		if err != nil {
			return nil, err
		}
		to = identity.FormatChannel("", s.conf.ChannelPrefix, code, s.conf.Issuer, req.ChannelID, s.conf.Domain)
	}

	subject := targetSubject(req.TargetUsername, s.conf.Issuer, s.conf.Domain)

	claims := VoiceClaims{
		Action: req.Type.String(),
		Serial: s.serial.Add(1),
		From:   from,
		To:     to,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.conf.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.conf.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.conf.Key))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &core.TokenResponse{
		AccessToken: signed,
		URI:         from,
	}, nil
}

// targetSubject formats a resolved target user id as a participant URI.
// A target that did not parse reaches the issuer as the raw URI and is used unchanged.
func targetSubject(target, issuer, domain string) string {
	if target == "" || strings.ContainsAny(target, ":@") {
		return target
	}
	return identity.FormatParticipant("", issuer, target, domain)
}
