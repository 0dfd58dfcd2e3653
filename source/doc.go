// Package source describes where raw legal texts live and loads them.
//
// A Manifest lists one Entry per source file with its format tag and jurisdiction.
// DefaultManifest reproduces the built-in Oregon registry. Load reads the files a
// manifest names, converting HTML exports to line-oriented text, and returns them as
// core.SourceDocument values ready for the format dispatcher.
package source
