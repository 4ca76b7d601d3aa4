package config

import (
	"sort"
	"sync"

	"github.com/ppanel/ppadmin/internal/config/data"
)

// Aliases represents the alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases are the built-in aliases for the PPanel views.
var DefaultAliases = map[string]string{
	"announcement":  "announcement",
	"announcements": "announcement",
	"ann":           "announcement",
	"notice":        "announcement",

	"node":   "node",
	"nodes":  "node",
	"server": "node",
	"no":     "node",

	"servergroup": "nodegroup",
	"nodegroup":   "nodegroup",
	"ng":          "nodegroup",

	"subscribe": "subscribe",
	"plan":      "subscribe",
	"plans":     "subscribe",
	"sub":       "subscribe",

	"subscribegroup": "subscribegroup",
	"subgroup":       "subscribegroup",
	"sg":             "subscribegroup",

	"user":  "user",
	"users": "user",
	"u":     "user",

	"config": "config",
	"system": "config",
	"sys":    "config",

	"profile": "profile",
	"ctx":     "profile",
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := &Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return a
}

// Load loads aliases from the default config file.
// Merges with default aliases, with file aliases taking precedence.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom loads aliases from a specific file path.
func (a *Aliases) LoadFrom(path string) error {
	loaded := &Aliases{Alias: make(map[string]string)}
	if _, err := data.ReadYAML(path, loaded); err != nil {
		return err
	}

	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range loaded.Alias {
		a.Alias[k] = v
	}

	return nil
}

// Resolve returns the view for an alias. Aliases may point at other aliases.
func (a *Aliases) Resolve(alias string) (string, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	seen := make(map[string]struct{})
	for {
		v, ok := a.Alias[alias]
		if !ok {
			return alias, len(seen) > 0
		}
		if v == alias {
			return v, true
		}
		if _, loop := seen[alias]; loop {
			return "", false
		}
		seen[alias] = struct{}{}
		alias = v
	}
}

// Set sets an alias.
func (a *Aliases) Set(alias, view string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[alias] = view
}

// Views returns the distinct view names, sorted.
func (a *Aliases) Views() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	set := make(map[string]struct{})
	for _, v := range a.Alias {
		set[v] = struct{}{}
	}
	vv := make([]string, 0, len(set))
	for v := range set {
		vv = append(vv, v)
	}
	sort.Strings(vv)

	return vv
}

// For returns the aliases pointing at a view, sorted.
func (a *Aliases) For(view string) []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	var aa []string
	for k, v := range a.Alias {
		if v == view && k != view {
			aa = append(aa, k)
		}
	}
	sort.Strings(aa)

	return aa
}
