package discovery

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// DefaultLocation is the multi-region location served by the global endpoint.
	DefaultLocation = "global"

	// DefaultBranch is the branch every data store is created with.
	DefaultBranch = "0"
)

// Credential types accepted in the credentials file.
const (
	CredentialAuthorizedUser = "authorized_user"
	CredentialServiceAccount = "service_account"
)

// Config identifies the target data store.
type Config struct {
	Project         string
	Location        string
	DataStore       string
	Branch          string
	CredentialsFile string
}

// DefaultConfig returns a Config with the default location and branch.
func DefaultConfig() Config {
	return Config{
		Location: DefaultLocation,
		Branch:   DefaultBranch,
	}
}

// Validate fills defaults and checks that the target and credentials are usable.
// The credentials file is read to check its type.
func (c *Config) Validate() error {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}

	if c.CredentialsFile == "" {
		return ErrCredentialsRequired
	}
	if _, err := CredentialType(c.CredentialsFile); err != nil {
		return err
	}
	if c.Project == "" {
		return ErrProjectRequired
	}
	if c.DataStore == "" {
		return ErrDataStoreRequired
	}
	return nil
}

// Parent returns the branch resource name documents are imported into.
func (c *Config) Parent() string {
	return fmt.Sprintf("projects/%s/locations/%s/dataStores/%s/branches/%s",
		c.Project, c.locationOrDefault(), c.DataStore, c.branchOrDefault())
}

// Endpoint returns the regional API endpoint, or "" for the global location.
func (c *Config) Endpoint() string {
	loc := c.locationOrDefault()
	if loc == DefaultLocation {
		return ""
	}
	return loc + "-discoveryengine.googleapis.com:443"
}

func (c *Config) locationOrDefault() string {
	if c.Location == "" {
		return DefaultLocation
	}
	return c.Location
}

func (c *Config) branchOrDefault() string {
	if c.Branch == "" {
		return DefaultBranch
	}
	return c.Branch
}

// CredentialType reads the "type" field of a Google credentials JSON file.
// Only authorized_user and service_account are accepted.
func CredentialType(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnknownCredentialType, path, err)
	}

	switch probe.Type {
	case CredentialAuthorizedUser, CredentialServiceAccount:
		return probe.Type, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCredentialType, probe.Type)
	}
}
