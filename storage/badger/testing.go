package badger

// NewMemoryRepository returns a repository on an in-memory backend.
// Closing the repository closes the backend.
func NewMemoryRepository(opts ...RepositoryOption) (*DocumentRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	repo, err := NewDocumentRepository(backend, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}
