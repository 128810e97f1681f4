// Package config holds flat, package-wide constants and variables
// consumed across the compiler: no config struct, no env-var parsing
// library, just plain const/var declarations.
package config

// Version is the current tarac version.
// Set at release time via -ldflags; left as a placeholder otherwise.
var Version = "0.1.0-dev"

// SourceExt is Tara's one recognized source file extension.
const SourceExt = ".tara"

// TrimSourceExt removes the source extension from a filename. Returns
// the original string if it doesn't end in SourceExt.
func TrimSourceExt(name string) string {
	if HasSourceExt(name) {
		return name[:len(name)-len(SourceExt)]
	}
	return name
}

// HasSourceExt reports whether path ends with SourceExt.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceExt) && path[len(path)-len(SourceExt):] == SourceExt
}

// ManifestName is the project manifest file internal/manifest looks
// for beside the entry source file.
const ManifestName = "tara.yaml"

// IsTestMode is false unless a test sets it; tarac itself never does.
// internal/buildsession consults it to mint a fixed session ID instead
// of a random one, so tests see the same session ID on every run.
var IsTestMode = false
