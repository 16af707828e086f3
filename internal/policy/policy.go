// Package policy evaluates the optional admission expression configured for the broker.
package policy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/darmiel/voxauth/internal/core"
)

// Env is what an admission expression can see.
type Env struct {
	Type           string
	Username       string
	ChannelID      string
	ChannelType    string
	TargetUsername string

	// Issuer and Realm come from the SDK parameters and are empty for relayed requests.
	Issuer string
	Realm  string
}

// NewEnv builds the expression environment for req.
func NewEnv(req core.TokenRequest, issuer, realm string) Env {
	return Env{
		Type:           string(req.Type),
		Username:       req.Username,
		ChannelID:      req.ChannelID,
		ChannelType:    req.ChannelType,
		TargetUsername: req.TargetUsername,
		Issuer:         issuer,
		Realm:          realm,
	}
}

// Policy is a compiled admission expression.
// A nil *Policy admits everything.
type Policy struct {
	source  string
	program *vm.Program
}

// Compile checks and compiles source. An empty source yields a nil policy.
func Compile(source string) (*Policy, error) {
	if source == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling policy expression: %w", err)
	}
	return &Policy{
		source:  source,
		program: program,
	}, nil
}

func (p *Policy) String() string {
	if p == nil {
		return "(allow all)"
	}
	return p.source
}

// Allow reports whether env passes the expression.
func (p *Policy) Allow(env Env) (bool, error) {
	if p == nil {
		return true, nil
	}
	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating policy expression: %w", err)
	}
	ok, isBool := out.(bool)
	return isBool && ok, nil
}
