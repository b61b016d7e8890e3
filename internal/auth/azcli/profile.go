// Package azcli inspects the local Azure CLI login state.
package azcli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirEnv overrides the Azure CLI configuration directory.
	ConfigDirEnv = "AZURE_CONFIG_DIR"

	profileFile = "azureProfile.json"
)

// Profile is the Azure CLI azureProfile.json file.
type Profile struct {
	InstallationID string         `json:"installationId"`
	Subscriptions  []Subscription `json:"subscriptions"`
}

// Subscription is one logged-in subscription or tenant.
type Subscription struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	State           string `json:"state"`
	TenantID        string `json:"tenantId"`
	HomeTenantID    string `json:"homeTenantId"`
	EnvironmentName string `json:"environmentName"`
	IsDefault       bool   `json:"isDefault"`
	User            struct {
		Name string `json:"name"`
		Type string `json:"type"` // "user" | "servicePrincipal"
	} `json:"user"`
}

// Default returns the default subscription, or nil when none is marked.
func (p *Profile) Default() *Subscription {
	for i := range p.Subscriptions {
		if p.Subscriptions[i].IsDefault {
			return &p.Subscriptions[i]
		}
	}
	return nil
}

// ForTenant returns the first subscription in tenantID, or nil.
func (p *Profile) ForTenant(tenantID string) *Subscription {
	for i := range p.Subscriptions {
		if p.Subscriptions[i].TenantID == tenantID {
			return &p.Subscriptions[i]
		}
	}
	return nil
}

// ConfigDir returns the Azure CLI configuration directory.
//
// Search order:
//  1. AZURE_CONFIG_DIR environment variable
//  2. ~/.azure
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".azure")
}

// FindProfile locates azureProfile.json. Returns empty string if not found.
func FindProfile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, profileFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// ParseProfile reads an azureProfile.json file. The CLI writes it with a
// UTF-8 byte order mark, which is stripped before decoding.
func ParseProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- Reading well-known Azure CLI profile
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &profile, nil
}
