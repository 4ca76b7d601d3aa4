package api

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fvbommel/sortorder"
	"gopkg.in/ini.v1"
)

// DefaultProfile names the profile used when none is given.
const DefaultProfile = "default"

const defaultTimeout = 30 * time.Second

// Profile holds the credentials of one PPanel deployment.
type Profile struct {
	Name     string
	Endpoint string
	Email    string
	Password string
	Token    string
	Timeout  time.Duration
}

// CanLogin checks if the profile carries login credentials.
func (p *Profile) CanLogin() bool {
	return p.Email != "" && p.Password != ""
}

// Profiles tracks the known profiles and the active one.
type Profiles struct {
	path     string
	profiles map[string]*Profile
	active   string
	mx       sync.RWMutex
}

// NewProfiles returns in memory profiles. The first one becomes active.
func NewProfiles(pp ...*Profile) *Profiles {
	m := Profiles{profiles: make(map[string]*Profile, len(pp))}
	for _, p := range pp {
		m.profiles[p.Name] = p
		if m.active == "" {
			m.active = p.Name
		}
	}

	return &m
}

// LoadProfiles reads profiles from an INI credentials file.
//
//	[default]
//	endpoint = https://api.example.com
//	email    = admin@example.com
//	password = secret
func LoadProfiles(path string) (*Profiles, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("credentials file %q: %w", path, err)
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}

	m := Profiles{path: path, profiles: make(map[string]*Profile)}
	for _, section := range f.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			if len(section.Keys()) == 0 {
				continue
			}
			name = DefaultProfile
		}
		if !section.HasKey("endpoint") {
			return nil, fmt.Errorf("profile %q: missing endpoint", name)
		}
		p := Profile{
			Name:     name,
			Endpoint: section.Key("endpoint").String(),
			Email:    section.Key("email").String(),
			Password: section.Key("password").String(),
			Token:    section.Key("token").String(),
			Timeout:  section.Key("timeout").MustDuration(defaultTimeout),
		}
		m.profiles[name] = &p
	}
	if len(m.profiles) == 0 {
		return nil, fmt.Errorf("no profiles found in %q", path)
	}
	if _, ok := m.profiles[DefaultProfile]; ok {
		m.active = DefaultProfile
	} else {
		m.active = m.Names()[0]
	}

	return &m, nil
}

// Path returns the backing file, if any.
func (m *Profiles) Path() string {
	return m.path
}

// Names returns the profile names in natural order.
func (m *Profiles) Names() []string {
	m.mx.RLock()
	defer m.mx.RUnlock()

	nn := make([]string, 0, len(m.profiles))
	for n := range m.profiles {
		nn = append(nn, n)
	}
	sort.Sort(sortorder.Natural(nn))

	return nn
}

// Get returns a copy of the named profile.
func (m *Profiles) Get(name string) (*Profile, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	p, ok := m.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoProfile, name)
	}
	cp := *p

	return &cp, nil
}

// Active returns the active profile name.
func (m *Profiles) Active() string {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.active
}

// SetActive switches the active profile.
func (m *Profiles) SetActive(name string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, ok := m.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoProfile, name)
	}
	m.active = name

	return nil
}
