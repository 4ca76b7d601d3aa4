package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/ppanel/ppadmin/internal/api"
	"github.com/ppanel/ppadmin/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	PPAdmin  *PPAdmin `yaml:"ppadmin"`
	conn     api.Connection
	profiles *api.Profiles
	mx       sync.RWMutex
}

// NewConfig creates a new Config with the given PPanel profiles.
func NewConfig(profiles *api.Profiles) *Config {
	return &Config{
		PPAdmin:  NewPPAdmin(),
		profiles: profiles,
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	found, err := data.ReadYAML(path, c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !found && force {
		return fmt.Errorf("config file does not exist: %s", path)
	}
	if c.PPAdmin != nil {
		c.PPAdmin.Validate()
	}

	return nil
}

// Save saves the configuration to the given path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.WriteYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and the known profiles to settle the final
// configuration. The profile is picked from --profile, then the config
// defaultProfile, then the credentials file default.
func (c *Config) Refine(flags *data.Flags, profiles *api.Profiles) (string, error) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.PPAdmin == nil {
		return "", fmt.Errorf("config.PPAdmin is nil")
	}
	if profiles == nil {
		return "", api.ErrNoProfile
	}
	c.profiles = profiles

	var profile string
	switch {
	case flags != nil && IsStringSet(flags.Profile):
		profile = *flags.Profile
	case c.PPAdmin.DefaultProfile != "":
		profile = c.PPAdmin.DefaultProfile
	default:
		profile = profiles.Active()
	}
	if _, err := profiles.Get(profile); err != nil {
		return "", fmt.Errorf("profile %q: %w", profile, err)
	}
	if _, err := c.PPAdmin.ActivateProfile(profile); err != nil {
		return "", err
	}
	if flags != nil {
		c.PPAdmin.Override(flags)
	}

	return profile, nil
}

// Connection returns the API connection.
func (c *Config) Connection() api.Connection {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.conn
}

// SetConnection sets the API connection.
func (c *Config) SetConnection(conn api.Connection) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.conn = conn
}

// Profiles returns the PPanel profiles.
func (c *Config) Profiles() *api.Profiles {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.profiles
}
