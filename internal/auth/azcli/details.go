package azcli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// State represents the login state (mirrors auth.State to avoid import cycle).
type State int

const (
	// StateConfigured means the CLI is installed and logged in.
	StateConfigured State = iota
	// StateMissing means the CLI or its login is missing.
	StateMissing
	// StateInvalid means a profile exists but cannot be used.
	StateInvalid
)

// Details contains Azure CLI login details.
type Details struct {
	State        State     `json:"-" yaml:"-"`
	Executable   string    `json:"executable,omitempty" yaml:"executable,omitempty"`     // Path to az, empty if not on PATH
	Account      string    `json:"account,omitempty" yaml:"account,omitempty"`           // Signed-in user or service principal
	AccountType  string    `json:"accountType,omitempty" yaml:"accountType,omitempty"`   // "user" | "servicePrincipal"
	TenantID     string    `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`         // Tenant of the selected subscription
	TenantSource string    `json:"tenantSource,omitempty" yaml:"tenantSource,omitempty"` // "config" | "default subscription"
	Subscription string    `json:"subscription,omitempty" yaml:"subscription,omitempty"` // Subscription name
	ProfilePath  string    `json:"profilePath,omitempty" yaml:"profilePath,omitempty"`   // Path to azureProfile.json
	LastLogin    time.Time `json:"lastLogin" yaml:"lastLogin"`                           // Profile modification time
	ErrorMessage string    `json:"error,omitempty" yaml:"error,omitempty"`               // Only for missing and invalid states
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// BuildDetails inspects the local Azure CLI installation and profile.
// Performs local inspection only - no network calls are made. When tenantID
// is set, the subscription for that tenant is reported instead of the default.
func BuildDetails(tenantID string) *Details {
	executable, err := lookPath("az")
	if err != nil {
		return &Details{
			State:        StateMissing,
			ErrorMessage: "Azure CLI not found on PATH. Install it and run: az login",
		}
	}

	path := FindProfile()
	if path == "" {
		return &Details{
			State:        StateMissing,
			Executable:   executable,
			ErrorMessage: "Not logged in. Run: az login",
		}
	}

	profile, err := ParseProfile(path)
	if err != nil {
		return &Details{
			State:        StateInvalid,
			Executable:   executable,
			ProfilePath:  path,
			ErrorMessage: fmt.Sprintf("Azure CLI profile invalid: %v", err),
		}
	}

	sub, source := selectSubscription(profile, tenantID)
	if sub == nil {
		msg := "Not logged in. Run: az login"
		if tenantID != "" {
			msg = fmt.Sprintf("Not logged in to tenant %s. Run: az login --tenant %s", tenantID, tenantID)
		}
		return &Details{
			State:        StateMissing,
			Executable:   executable,
			ProfilePath:  path,
			ErrorMessage: msg,
		}
	}

	return &Details{
		State:        StateConfigured,
		Executable:   executable,
		Account:      sub.User.Name,
		AccountType:  sub.User.Type,
		TenantID:     sub.TenantID,
		TenantSource: source,
		Subscription: sub.Name,
		ProfilePath:  path,
		LastLogin:    fileModTime(path),
	}
}

func selectSubscription(profile *Profile, tenantID string) (*Subscription, string) {
	if tenantID != "" {
		return profile.ForTenant(tenantID), "config"
	}
	if sub := profile.Default(); sub != nil {
		return sub, "default subscription"
	}
	return nil, ""
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// FormatBrief creates a one-line summary of the Azure CLI login.
//
// Example: "user alice@x.com, Tenant: 0000-..., Subscription: Dev".
func FormatBrief(details *Details) string {
	if details.State != StateConfigured {
		return details.ErrorMessage
	}

	var parts []string
	parts = append(parts, strings.TrimSpace(details.AccountType+" "+details.Account))
	parts = append(parts, fmt.Sprintf("Tenant: %s", details.TenantID))
	if details.Subscription != "" {
		parts = append(parts, fmt.Sprintf("Subscription: %s", details.Subscription))
	}
	return strings.Join(parts, ", ")
}
