package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the root configuration for timekeep, stored in
// ~/.timekeep/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	Azure      AzureConfig      `json:"azure"`
	SharePoint SharePointConfig `json:"sharepoint"`
	// Admins lists the email addresses with access to the admin commands
	// and the all-users metrics view. Matching is case-insensitive.
	Admins []string `json:"admins"`
}

// AzureConfig holds the Azure AD settings for the OAuth2 device code flow.
type AzureConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID used for sign-in.
	ClientID string `json:"client_id"`
}

// SharePointConfig identifies the SharePoint site and the lists backing each
// record collection.
type SharePointConfig struct {
	// SitePath is the Graph site identifier, e.g.
	// "contoso.sharepoint.com:/sites/Timekeeping:".
	SitePath string    `json:"site_path"`
	Lists    ListNames `json:"lists"`
}

// ListNames maps each record collection to its SharePoint list name.
type ListNames struct {
	TimeEntries      string `json:"time_entries"`
	Clients          string `json:"clients"`
	Projects         string `json:"projects"`
	Activities       string `json:"activities"`
	UserClientAccess string `json:"user_client_access"`
	UtilizationRules string `json:"utilization_rules"`
	Holidays         string `json:"holidays"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational or production deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
)

// defaultListNames returns the list names created by the site provisioning
// scripts; override in config.json when the site uses different names.
func defaultListNames() ListNames {
	return ListNames{
		TimeEntries:      "TimeEntries",
		Clients:          "Clients",
		Projects:         "Projects",
		Activities:       "Activities",
		UserClientAccess: "UserClientAccess",
		UtilizationRules: "ClientUtilizationRules",
		Holidays:         "Holidays",
	}
}

// defaultConfig returns a Config pre-filled with sensible defaults.
// SitePath has no usable default; commands that need the data store fail
// with a pointer to the config file when it is empty.
func defaultConfig() Config {
	return Config{
		Azure: AzureConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
		SharePoint: SharePointConfig{
			Lists: defaultListNames(),
		},
	}
}

// IsAdmin reports whether email is on the configured admin list,
// compared case-insensitively.
func (c Config) IsAdmin(email string) bool {
	for _, a := range c.Admins {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// timekeep configuration – ~/.timekeep/config.json
//
// Fill in your organisation's values; "site_path" is required before any
// command that talks to SharePoint will work.
{
  // ── Azure AD sign-in (OAuth2 device code flow) ───────────────────────────
  "azure": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    // Replace with your own Azure app registration for single-tenant deployments.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab"
  },

  // ── SharePoint data store ────────────────────────────────────────────────
  "sharepoint": {
    // Graph site identifier of the site holding the timekeeping lists, e.g.
    // "contoso.sharepoint.com:/sites/Timekeeping:"
    "site_path": "",

    // SharePoint list name per record collection.
    "lists": {
      "time_entries": "TimeEntries",
      "clients": "Clients",
      "projects": "Projects",
      "activities": "Activities",
      "user_client_access": "UserClientAccess",
      "utilization_rules": "ClientUtilizationRules",
      "holidays": "Holidays"
    }
  },

  // ── Administrators ───────────────────────────────────────────────────────
  // Emails with access to the admin commands. Case-insensitive.
  "admins": []
}
`

// configFilePath returns the path to ~/.timekeep/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".timekeep", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.timekeep/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Azure.TenantID == "" {
		cfg.Azure.TenantID = DefaultTenantID
	}
	if cfg.Azure.ClientID == "" {
		cfg.Azure.ClientID = DefaultClientID
	}
	def := defaultListNames()
	l := &cfg.SharePoint.Lists
	if l.TimeEntries == "" {
		l.TimeEntries = def.TimeEntries
	}
	if l.Clients == "" {
		l.Clients = def.Clients
	}
	if l.Projects == "" {
		l.Projects = def.Projects
	}
	if l.Activities == "" {
		l.Activities = def.Activities
	}
	if l.UserClientAccess == "" {
		l.UserClientAccess = def.UserClientAccess
	}
	if l.UtilizationRules == "" {
		l.UtilizationRules = def.UtilizationRules
	}
	if l.Holidays == "" {
		l.Holidays = def.Holidays
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
