package config

import "github.com/ppanel/ppadmin/internal/config/data"

// Flag defaults.
const (
	// DefaultRefreshRate is the grid refresh interval in seconds.
	DefaultRefreshRate = 2.0

	DefaultLogLevel = "info"
)

// NewFlags returns the CLI flags preset to their defaults.
func NewFlags() *data.Flags {
	f := data.NewFlags()
	*f.RefreshRate = DefaultRefreshRate
	*f.LogLevel = DefaultLogLevel
	*f.LogFile = AppLogFile

	return f
}

// IsBoolSet checks a flag was given and is true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet checks a flag was given a value.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
