package discovery

import "errors"

var (
	// ErrProjectRequired is returned when Config.Project is empty.
	ErrProjectRequired = errors.New("google cloud project is required")

	// ErrDataStoreRequired is returned when Config.DataStore is empty.
	ErrDataStoreRequired = errors.New("vertex ai data store is required")

	// ErrCredentialsRequired is returned when Config.CredentialsFile is empty.
	ErrCredentialsRequired = errors.New("credentials file is required")

	// ErrUnknownCredentialType is returned when the credentials file is neither an
	// authorized_user nor a service_account key.
	ErrUnknownCredentialType = errors.New("unknown credential type")
)
