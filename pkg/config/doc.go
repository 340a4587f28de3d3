// Package config loads and validates engine configuration files.
//
// A configuration names the plugin directories whose descriptor
// resources discovery scans, toggles discovery itself, and carries the
// logging setup. Files may be YAML or JSON; the format is detected from
// the file extension.
package config
