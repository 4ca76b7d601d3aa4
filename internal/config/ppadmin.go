package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ppanel/ppadmin/internal/config/data"
	"github.com/ppanel/ppadmin/internal/grid"
)

// Default values
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultView       = data.DefaultView
	minRefreshRate    = 0.5
)

// PPAdmin represents the ppadmin global configuration.
type PPAdmin struct {
	RefreshRate    float32           `yaml:"refreshRate"`
	APITimeout     string            `yaml:"apiTimeout"`
	ReadOnly       bool              `yaml:"readOnly"`
	DefaultView    string            `yaml:"defaultView"`
	DefaultProfile string            `yaml:"defaultProfile"`
	UI             data.UI           `yaml:"ui"`
	Logger         data.Logger       `yaml:"logger"`
	Grid           data.Grid         `yaml:"grid"`
	FeatureGates   data.FeatureGates `yaml:"featureGates"`
	Export         data.Export       `yaml:"export"`

	activeProfile string
	state         *data.ProfileState
	store         *data.Store
	mx            sync.RWMutex
}

// NewPPAdmin creates a PPAdmin with default settings.
func NewPPAdmin() *PPAdmin {
	return &PPAdmin{
		RefreshRate:  DefaultRefreshRate,
		APITimeout:   DefaultAPITimeout.String(),
		DefaultView:  DefaultView,
		Logger:       data.Logger{Level: DefaultLogLevel},
		Grid:         data.NewGrid(),
		FeatureGates: data.NewFeatureGates(),
		Export:       data.Export{Format: data.DefaultExportFormat},
	}
}

// Validate ensures PPAdmin has valid settings.
func (p *PPAdmin) Validate() {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.RefreshRate < minRefreshRate {
		p.RefreshRate = DefaultRefreshRate
	}
	if _, err := time.ParseDuration(p.APITimeout); err != nil {
		p.APITimeout = DefaultAPITimeout.String()
	}
	if p.DefaultView == "" {
		p.DefaultView = DefaultView
	}
	if p.Logger.Level == "" {
		p.Logger.Level = DefaultLogLevel
	}
	if p.Export.Format == "" {
		p.Export.Format = data.DefaultExportFormat
	}
	p.Grid.Validate()
}

// SetStore points profile states at another directory.
func (p *PPAdmin) SetStore(s *data.Store) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.store = s
}

// ActiveProfile returns the currently active PPanel profile.
func (p *PPAdmin) ActiveProfile() string {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return p.activeProfile
}

// ActiveState returns the saved state of the active profile.
func (p *PPAdmin) ActiveState() *data.ProfileState {
	p.mx.RLock()
	defer p.mx.RUnlock()
	return p.state
}

// ActivateProfile switches to a profile and loads its saved state.
func (p *PPAdmin) ActivateProfile(profile string) (*data.ProfileState, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile cannot be empty")
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	st, err := p.storeLocked().Load(profile)
	if err != nil {
		return nil, err
	}
	p.activeProfile, p.state = profile, st

	return st, nil
}

// SaveActive persists the state of the active profile.
func (p *PPAdmin) SaveActive() error {
	p.mx.Lock()
	st, store := p.state, p.storeLocked()
	p.mx.Unlock()

	if st == nil {
		return nil
	}
	return store.Save(st)
}

func (p *PPAdmin) storeLocked() *data.Store {
	if p.store == nil {
		p.store = data.NewStore(AppProfilesDir)
	}
	return p.store
}

// IsReadOnly checks the global and the profile read-only switches.
func (p *PPAdmin) IsReadOnly() bool {
	p.mx.RLock()
	ro := p.ReadOnly
	p.mx.RUnlock()

	if ro {
		return true
	}
	st := p.ActiveState()
	return st != nil && st.IsReadOnly()
}

// Gates returns the feature gates merged with the profile overrides.
func (p *PPAdmin) Gates() data.FeatureGates {
	p.mx.RLock()
	gates := p.FeatureGates
	p.mx.RUnlock()

	if st := p.ActiveState(); st != nil {
		gates.Merge(st.Gates())
	}
	return gates
}

// GridOptions returns the grid tuning.
func (p *PPAdmin) GridOptions() grid.Options {
	p.mx.RLock()
	defer p.mx.RUnlock()

	return grid.Options{
		InitialPageSize:         p.Grid.PageSize,
		ResetPageSize:           p.Grid.ResetPageSize,
		ResetPageOnFilterChange: p.Grid.ResetPageOnFilterChange,
		DiscardStaleResponses:   p.Grid.DiscardStaleResponses,
	}
}

// Override applies CLI flag overrides to the configuration.
func (p *PPAdmin) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate >= minRefreshRate {
		p.RefreshRate = *flags.RefreshRate
	}
	if flags.ReadOnly != nil && *flags.ReadOnly {
		p.ReadOnly = true
	}
	// Write flag overrides ReadOnly
	if flags.Write != nil && *flags.Write {
		p.ReadOnly = false
	}
	if IsStringSet(flags.Profile) {
		p.DefaultProfile = *flags.Profile
	}
	if IsStringSet(flags.LogLevel) {
		p.Logger.Level = *flags.LogLevel
	}
	if IsBoolSet(flags.Headless) {
		p.UI.Headless = true
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (p *PPAdmin) GetAPITimeout() (time.Duration, error) {
	p.mx.RLock()
	timeoutStr := p.APITimeout
	p.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}
