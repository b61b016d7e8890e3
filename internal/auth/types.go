// Package auth provides the ambient Azure credential and checks whether it
// can be used against the directory.
package auth

import (
	"time"

	"github.com/agentstation/aadsync/internal/auth/azcli"
)

// State represents the state of the ambient credential.
type State int

const (
	// StateConfigured means a credential is available.
	StateConfigured State = iota
	// StateMissing means no credential is available.
	StateMissing
	// StateInvalid means a credential was found but cannot produce a token.
	StateInvalid
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "Configured"
	case StateMissing:
		return "Missing"
	default:
		return "Invalid"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status represents credential status with details.
type Status struct {
	State   State          `json:"state" yaml:"state"`
	Summary string         `json:"summary" yaml:"summary"`                 // Brief one-line summary
	CLI     *azcli.Details `json:"cli,omitempty" yaml:"cli,omitempty"`     // Local Azure CLI inspection
	Token   *TokenDetails  `json:"token,omitempty" yaml:"token,omitempty"` // Set only when a token was requested
}

// TokenDetails describes a token acquired while checking.
type TokenDetails struct {
	Scope     string    `json:"scope" yaml:"scope"`
	ExpiresOn time.Time `json:"expiresOn" yaml:"expiresOn"`
}
