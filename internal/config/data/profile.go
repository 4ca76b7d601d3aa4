package data

import "sync"

// ProfileState is what ppadmin remembers about one PPanel profile between
// runs: the last view, hidden grid columns and per profile overrides.
type ProfileState struct {
	Profile      string       `yaml:"profile"`
	ReadOnly     *bool        `yaml:"readOnly,omitempty"`
	View         *View        `yaml:"view,omitempty"`
	FeatureGates FeatureGates `yaml:"featureGates,omitempty"`

	mx sync.RWMutex
}

// NewProfileState returns the state of a profile never used before.
func NewProfileState(profile string) *ProfileState {
	return &ProfileState{Profile: profile, View: NewView()}
}

// Validate fills in missing settings after a load.
func (s *ProfileState) Validate() {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.View == nil {
		s.View = NewView()
	}
	s.View.Validate()
}

// ActiveView returns the view last shown for this profile.
func (s *ProfileState) ActiveView() string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if s.View == nil {
		return DefaultView
	}
	return s.View.Active
}

// SetActiveView records the view on screen.
func (s *ProfileState) SetActiveView(view string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.view().Active = view
}

// HiddenColumns returns the columns hidden in a view.
func (s *ProfileState) HiddenColumns(view string) []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if s.View == nil {
		return nil
	}
	return s.View.HiddenColumns(view)
}

// SetHiddenColumns records the columns hidden in a view.
func (s *ProfileState) SetHiddenColumns(view string, cols []string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.view().SetHiddenColumns(view, cols)
}

// IsReadOnly reports whether mutations are locked for this profile.
func (s *ProfileState) IsReadOnly() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.ReadOnly != nil && *s.ReadOnly
}

func (s *ProfileState) SetReadOnly(ro bool) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.ReadOnly = &ro
}

// Gates returns the profile feature gate overrides.
func (s *ProfileState) Gates() FeatureGates {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.FeatureGates
}

func (s *ProfileState) view() *View {
	if s.View == nil {
		s.View = NewView()
	}
	return s.View
}
