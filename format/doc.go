// Package format picks the splitting rule for each source document and applies the
// per-format policies around it.
//
// Dispatcher.SectionsFor returns a Result tagged with how the sections were produced:
//   - OutcomeMatched: the format's header rule found at least one section
//   - OutcomeLiteral: the document is a single-section literal
//   - OutcomeFallback: the rule matched nothing and the whole document became one section
//
// A fallback is not an error. It is logged at WARN so operators can spot source files
// whose layout changed. Municipal code documents are folded with LastWins so table of
// contents headers give way to the real section bodies that follow them.
package format
