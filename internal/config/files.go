package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the ppadmin directories.
const AppName = "ppadmin"

// EnvConfigDir overrides the config, data and state directories at once.
const EnvConfigDir = "PPADMIN_CONFIG_DIR"

// Locations, set by InitLocs.
var (
	AppConfigDir string
	AppDataDir   string
	AppStateDir  string

	AppConfigFile      string
	AppCredentialsFile string
	AppHotkeysFile     string
	AppAliasesFile     string

	// AppProfilesDir holds one state file per PPanel profile.
	AppProfilesDir string

	AppLogFile    string
	AppExportsDir string
)

// InitLocs resolves the ppadmin locations following the XDG layout, or
// under $PPADMIN_CONFIG_DIR when set, and creates them.
func InitLocs() error {
	cfg, dat, state, err := baseDirs()
	if err != nil {
		return err
	}
	AppConfigDir, AppDataDir, AppStateDir = cfg, dat, state

	AppConfigFile = filepath.Join(cfg, "config.yaml")
	AppCredentialsFile = filepath.Join(cfg, "credentials")
	AppHotkeysFile = filepath.Join(cfg, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(cfg, "aliases.yaml")
	AppProfilesDir = filepath.Join(dat, "profiles")
	AppLogFile = filepath.Join(state, AppName+".log")
	AppExportsDir = filepath.Join(state, "exports")

	for _, d := range []string{cfg, dat, state, AppProfilesDir} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return fmt.Errorf("create %q: %w", d, err)
		}
	}

	return nil
}

func baseDirs() (cfg, dat, state string, err error) {
	if root := os.Getenv(EnvConfigDir); root != "" {
		return root, filepath.Join(root, "data"), filepath.Join(root, "state"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", "", err
	}
	xdg := func(env string, fallback ...string) string {
		if v := os.Getenv(env); v != "" {
			return filepath.Join(v, AppName)
		}
		return filepath.Join(append(append([]string{home}, fallback...), AppName)...)
	}

	return xdg("XDG_CONFIG_HOME", ".config"),
		xdg("XDG_DATA_HOME", ".local", "share"),
		xdg("XDG_STATE_HOME", ".local", "state"),
		nil
}
