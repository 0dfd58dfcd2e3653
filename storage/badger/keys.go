package badger

const (
	documentPrefix = "doc:"
	lastRunKey     = "run:last"
)

func makeDocumentKey(id string) []byte {
	return []byte(documentPrefix + id)
}
