package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigValidate(t *testing.T) {
	user := writeCredentials(t, `{"type": "authorized_user", "client_id": "x"}`)
	sa := writeCredentials(t, `{"type": "service_account", "project_id": "p"}`)
	external := writeCredentials(t, `{"type": "external_account"}`)
	garbage := writeCredentials(t, `not json`)

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "authorized user",
			cfg:  Config{Project: "p", DataStore: "ds", CredentialsFile: user},
		},
		{
			name: "service account",
			cfg:  Config{Project: "p", DataStore: "ds", CredentialsFile: sa, Location: "us"},
		},
		{
			name:    "missing credentials",
			cfg:     Config{Project: "p", DataStore: "ds"},
			wantErr: ErrCredentialsRequired,
		},
		{
			name:    "unknown credential type",
			cfg:     Config{Project: "p", DataStore: "ds", CredentialsFile: external},
			wantErr: ErrUnknownCredentialType,
		},
		{
			name:    "unparseable credentials",
			cfg:     Config{Project: "p", DataStore: "ds", CredentialsFile: garbage},
			wantErr: ErrUnknownCredentialType,
		},
		{
			name:    "missing credentials file",
			cfg:     Config{Project: "p", DataStore: "ds", CredentialsFile: filepath.Join(t.TempDir(), "nope.json")},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "missing project",
			cfg:     Config{DataStore: "ds", CredentialsFile: user},
			wantErr: ErrProjectRequired,
		},
		{
			name:    "missing data store",
			cfg:     Config{Project: "p", CredentialsFile: user},
			wantErr: ErrDataStoreRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigValidate_FillsDefaults(t *testing.T) {
	cfg := Config{Project: "p", DataStore: "ds", CredentialsFile: writeCredentials(t, `{"type":"service_account"}`)}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultLocation, cfg.Location)
	assert.Equal(t, DefaultBranch, cfg.Branch)
}

func TestConfigParent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project = "tenant-first-aid"
	cfg.DataStore = "or-laws"
	assert.Equal(t, "projects/tenant-first-aid/locations/global/dataStores/or-laws/branches/0", cfg.Parent())

	cfg.Location = "us"
	assert.Equal(t, "projects/tenant-first-aid/locations/us/dataStores/or-laws/branches/0", cfg.Parent())
}

func TestConfigEndpoint(t *testing.T) {
	assert.Empty(t, (&Config{}).Endpoint())
	assert.Empty(t, (&Config{Location: "global"}).Endpoint())
	assert.Equal(t, "eu-discoveryengine.googleapis.com:443", (&Config{Location: "eu"}).Endpoint())
}

func TestCredentialType(t *testing.T) {
	got, err := CredentialType(writeCredentials(t, `{"type":"authorized_user"}`))
	require.NoError(t, err)
	assert.Equal(t, CredentialAuthorizedUser, got)
}
