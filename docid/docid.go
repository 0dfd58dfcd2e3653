// Package docid maps corpus section ids to identifiers accepted by external
// document stores.
//
// Allowed characters are ASCII letters, digits and hyphen; everything else becomes a
// hyphen. Identifiers longer than MaxLength are truncated and suffixed with a short
// hash of the raw id so distinct long ids stay distinct.
package docid

import (
	"regexp"

	"github.com/tenantfirstaid/lawcorpus/core"
)

const (
	// MaxLength is the longest identifier Sanitize returns.
	MaxLength = 63

	// hashBytes is the digest size; hex encoding doubles it.
	hashBytes = 4
	hashLen   = hashBytes * 2
)

var disallowed = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Sanitize returns an identifier for raw that matches [a-zA-Z0-9-]{0,63}.
//
// The result is deterministic. Sanitize is not idempotent for long ids: sanitizing a
// hashed id again appends a new hash, so only raw corpus ids should be passed in.
func Sanitize(raw string) string {
	id := disallowed.ReplaceAllString(raw, "-")
	if len(id) <= MaxLength {
		return id
	}
	prefix := id[:MaxLength-hashLen-1]
	return prefix + "-" + core.ContentHash(raw, hashBytes)
}
