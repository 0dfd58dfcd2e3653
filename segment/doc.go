// Package segment splits raw legal text into ordered sections.
//
// A Rule recognizes section headers in one of two layouts:
//   - InlineRule: anchor and title share the header line ("      90.260 Definitions.")
//   - StackedRule: the anchor sits alone on its line and the title follows on the next
//     non-empty line ("411-054-0000" then "Purpose")
//
// Section ids are "<prefix>_<anchor>". A rule that finds no headers returns an empty
// slice; choosing a fallback is left to the caller.
package segment
