// Package corpus assembles per-document sections into one ordered record set and
// persists it as JSON lines.
//
// The corpus file is the hand-off point between building and importing. It is always
// regenerated in full and replaced atomically, so a reader never observes a partial file.
package corpus
