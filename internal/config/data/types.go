// Package data provides configuration data types and interfaces for the ppadmin application.
package data

// Flags represents CLI command-line flags for the ppadmin application.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Headless    *bool    // Run in headless mode (no TUI)
	Command     *string  // Command to execute
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
	Profile     *string  // PPanel profile to use
	Endpoint    *string  // Overrides the profile endpoint
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Headless    bool `yaml:"headless"`
	Logoless    bool `yaml:"logoless"`
	Crumbsless  bool `yaml:"crumbsless"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Grid tunes the data grids.
type Grid struct {
	PageSize                int  `yaml:"pageSize"`
	ResetPageSize           int  `yaml:"resetPageSize"`
	ResetPageOnFilterChange bool `yaml:"resetPageOnFilterChange"`
	DiscardStaleResponses   bool `yaml:"discardStaleResponses"`
}

// Export configures where grid exports go.
type Export struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
	Bucket string `yaml:"bucket,omitempty"`
	Region string `yaml:"region,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
}

// Grid and export defaults.
const (
	DefaultPageSize      = 50
	DefaultResetPageSize = 10
	MaxPageSize          = 1000
	DefaultExportFormat  = "csv"
)

// NewGrid returns the stock grid settings.
func NewGrid() Grid {
	return Grid{
		PageSize:              DefaultPageSize,
		ResetPageSize:         DefaultResetPageSize,
		DiscardStaleResponses: true,
	}
}

// Validate clamps page sizes into range.
func (g *Grid) Validate() {
	if g.PageSize <= 0 || g.PageSize > MaxPageSize {
		g.PageSize = DefaultPageSize
	}
	if g.ResetPageSize <= 0 || g.ResetPageSize > MaxPageSize {
		g.ResetPageSize = DefaultResetPageSize
	}
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Headless:    new(bool),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
		Profile:     new(string),
		Endpoint:    new(string),
	}
}
