package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fvbommel/sortorder"
	"github.com/ppanel/ppadmin/internal/config/data"
)

// HotKey runs a ppadmin command from a key, e.g. Shift-1 -> plan.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
}

// HotKeys holds the user hotkeys from hotkeys.yaml.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`

	mx sync.RWMutex
}

// NewHotKeys returns an empty set of hotkeys.
func NewHotKeys() *HotKeys {
	return &HotKeys{HotKey: make(map[string]HotKey)}
}

// Load reads the user hotkeys file.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom replaces the hotkeys with the ones in path. A missing file
// leaves none.
func (h *HotKeys) LoadFrom(path string) error {
	loaded := NewHotKeys()
	if _, err := data.ReadYAML(path, loaded); err != nil {
		return err
	}

	h.mx.Lock()
	defer h.mx.Unlock()
	h.HotKey = loaded.HotKey
	if h.HotKey == nil {
		h.HotKey = make(map[string]HotKey)
	}

	return nil
}

// Validate reports hotkeys missing a shortcut, reusing another's shortcut
// or running a command rejected by known.
func (h *HotKeys) Validate(known func(cmd string) bool) error {
	h.mx.RLock()
	defer h.mx.RUnlock()

	var (
		errs  []error
		owner = make(map[string]string, len(h.HotKey))
	)
	for _, name := range h.namesLocked() {
		hk := h.HotKey[name]
		sc := strings.ToLower(strings.TrimSpace(hk.ShortCut))
		switch {
		case sc == "":
			errs = append(errs, fmt.Errorf("hotkey %q: missing shortcut", name))
			continue
		case owner[sc] != "":
			errs = append(errs, fmt.Errorf("hotkey %q: shortcut %s already bound to %q", name, hk.ShortCut, owner[sc]))
		default:
			owner[sc] = name
		}
		if !known(hk.Command) {
			errs = append(errs, fmt.Errorf("hotkey %q: unknown command %q", name, hk.Command))
		}
	}

	return errors.Join(errs...)
}

// Get returns a copy of a hotkey, or nil.
func (h *HotKeys) Get(name string) *HotKey {
	h.mx.RLock()
	defer h.mx.RUnlock()

	if hk, ok := h.HotKey[name]; ok {
		return &hk
	}
	return nil
}

// Names lists the hotkeys in natural order.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	return h.namesLocked()
}

func (h *HotKeys) namesLocked() []string {
	nn := make([]string, 0, len(h.HotKey))
	for n := range h.HotKey {
		nn = append(nn, n)
	}
	sort.Sort(sortorder.Natural(nn))

	return nn
}
