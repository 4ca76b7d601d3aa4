// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package ui

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/derailed/tcell/v2"
)

// Rune keys are stored as tcell keys so plain and special keys share a map.
const (
	KeyA tcell.Key = iota + 'a'
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyShiftA tcell.Key = iota + 'A'
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

const (
	KeySpace        tcell.Key = ' '
	KeySlash        tcell.Key = '/'
	KeyColon        tcell.Key = ':'
	KeyHelp         tcell.Key = '?'
	KeyPlus         tcell.Key = '+'
	KeyMinus        tcell.Key = '-'
	KeyLeftBracket  tcell.Key = '['
	KeyRightBracket tcell.Key = ']'
	KeyLeftBrace    tcell.Key = '{'
	KeyRightBrace   tcell.Key = '}'
)

var keyNames = map[tcell.Key]string{
	KeySpace: "space",
}

// AsKey maps a rune event onto its tcell key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}

// KeyName returns a printable name for a key.
func KeyName(k tcell.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if n, ok := tcell.KeyNames[k]; ok {
		return n
	}

	return string(rune(k))
}

// ParseKey resolves a shortcut such as "x", "Shift-X" or "Ctrl-U".
func ParseKey(s string) (tcell.Key, bool) {
	if rr := []rune(s); len(rr) == 1 {
		return tcell.Key(rr[0]), true
	}
	if after, ok := strings.CutPrefix(s, "Shift-"); ok {
		if rr := []rune(after); len(rr) == 1 {
			return tcell.Key(unicode.ToUpper(rr[0])), true
		}
	}
	for k, n := range keyNames {
		if strings.EqualFold(n, s) {
			return k, true
		}
	}
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, s) {
			return k, true
		}
	}

	return 0, false
}

// RuneKey returns the key bound to a rune.
func RuneKey(r rune) tcell.Key {
	return tcell.Key(r)
}

type (
	// ActionHandler handles a keyboard command.
	ActionHandler func(*tcell.EventKey) *tcell.EventKey

	// KeyAction represents a keyboard action.
	KeyAction struct {
		Description string
		Action      ActionHandler
		Visible     bool
		Shared      bool
		Dangerous   bool
	}

	// KeyMap tracks key to action mappings.
	KeyMap map[tcell.Key]KeyAction

	// KeyActions tracks mappings between keystrokes and actions.
	KeyActions struct {
		actions KeyMap
		mx      sync.RWMutex
	}
)

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: display}
}

// NewSharedKeyAction returns a keyboard action shared by all views.
func NewSharedKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: display, Shared: true}
}

// NewDangerousKeyAction returns a keyboard action that needs a confirmation.
func NewDangerousKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: display, Dangerous: true}
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// NewKeyActionsFromMap constructs actions from a key map.
func NewKeyActionsFromMap(mm KeyMap) *KeyActions {
	return &KeyActions{actions: mm}
}

// Get fetches an action given a key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[key]

	return v, ok
}

// Len returns the number of bound keys.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Reset clears out actions.
func (a *KeyActions) Reset(aa *KeyActions) {
	a.Clear()
	a.Merge(aa)
}

// Range ranges over all actions and triggers a given function.
func (a *KeyActions) Range(f func(tcell.Key, KeyAction)) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	for k, v := range a.actions {
		f(k, v)
	}
}

// Add adds a new key action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = ka
}

// Bulk adds multiple actions.
func (a *KeyActions) Bulk(aa KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range aa {
		a.actions[k] = v
	}
}

// Merge merges given actions into existing set.
func (a *KeyActions) Merge(aa *KeyActions) {
	a.mx.Lock()
	defer a.mx.Unlock()

	aa.mx.RLock()
	defer aa.mx.RUnlock()
	for k, v := range aa.actions {
		a.actions[k] = v
	}
}

// Clear remove all actions.
func (a *KeyActions) Clear() {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k := range a.actions {
		delete(a.actions, k)
	}
}

// ClearDynamic removes the actions that are not shared.
func (a *KeyActions) ClearDynamic() {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range a.actions {
		if !v.Shared {
			delete(a.actions, k)
		}
	}
}

// Delete deletes actions by the given keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Hints returns a collection of hints.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		v := a.actions[k]
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: v.Description,
			Visible:     v.Visible,
		})
	}

	return hh
}
