package authclient

import "context"

// Theme is the persisted appearance preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ThemeKey is the storage key for the preference.
const ThemeKey = "preferred_theme"

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// ThemeManager persists and resolves the theme preference. The system
// theme is probed through an injected func so resolution stays testable.
type ThemeManager struct {
	store  KeyValueStore
	system func() Theme
	logger Logger
}

type ThemeOption func(*ThemeManager)

// WithSystemTheme injects the probe for the platform preference.
func WithSystemTheme(probe func() Theme) ThemeOption {
	return func(m *ThemeManager) {
		if probe != nil {
			m.system = probe
		}
	}
}

func WithThemeLogger(logger Logger) ThemeOption {
	return func(m *ThemeManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewThemeManager(store KeyValueStore, opts ...ThemeOption) *ThemeManager {
	m := &ThemeManager{
		store:  store,
		system: func() Theme { return ThemeLight },
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Current returns the saved preference, falling back to system when
// nothing valid is stored.
func (m *ThemeManager) Current(ctx context.Context) Theme {
	value, ok, err := m.store.Get(ctx, ThemeKey)
	if err != nil {
		m.logger.Warn("theme read error: %v", err)
		return ThemeSystem
	}
	if !ok {
		return ThemeSystem
	}

	theme := Theme(value)
	if !theme.IsValid() {
		return ThemeSystem
	}
	return theme
}

// Resolve maps the preference to a concrete light/dark value.
func (m *ThemeManager) Resolve(ctx context.Context) Theme {
	theme := m.Current(ctx)
	if theme == ThemeSystem {
		return m.system()
	}
	return theme
}

// Cycle advances system -> light -> dark -> system, persists the new
// preference, and returns it.
func (m *ThemeManager) Cycle(ctx context.Context) (Theme, error) {
	var next Theme
	switch m.Current(ctx) {
	case ThemeSystem:
		next = ThemeLight
	case ThemeLight:
		next = ThemeDark
	default:
		next = ThemeSystem
	}

	if err := m.store.Set(ctx, ThemeKey, string(next)); err != nil {
		return "", err
	}

	return next, nil
}
