package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/shadok-gibby/game/engine"
)

const (
	// FileName is the config file created under the user config directory
	FileName = "shadok-gibby.yaml"

	fileHeader = "# Shadok and Gibby config\n\n"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultPath returns <user config dir>/shadok-gibby.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

// Manager handles loading, validating and saving the game configuration file
type Manager struct {
	path    string
	log     logrus.FieldLogger
	current *engine.Config
	mu      sync.RWMutex
}

// NewManager creates a configuration manager bound to one file path
func NewManager(path string, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		path: path,
		log:  log.WithField("config", path),
	}
}

// Path returns the file the manager reads and writes
func (m *Manager) Path() string {
	return m.path
}

// Parse decodes YAML on top of the defaults, so missing keys keep their
// default value, then validates the result.
func Parse(data []byte) (*engine.Config, error) {
	config := engine.DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := engine.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// Load reads and validates the configuration file
func (m *Manager) Load() (*engine.Config, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file '%s': %w", m.path, err)
	}

	m.mu.Lock()
	m.current = config
	m.mu.Unlock()

	return config, nil
}

// Save validates the configuration and writes it to disk
func (m *Manager) Save(config *engine.Config) error {
	if err := engine.ValidateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to create config file '%s': %w", m.path, err)
	}

	m.mu.Lock()
	m.current = config
	m.mu.Unlock()

	return nil
}

// LoadOrInit returns a usable configuration no matter what is on disk. A
// valid file wins; a broken file is reported and the defaults are used; a
// missing file is created with the defaults.
func (m *Manager) LoadOrInit() *engine.Config {
	config, err := m.Load()
	switch {
	case err == nil:
		m.log.Debug("loaded configuration")
		return config

	case errors.Is(err, ErrConfigNotFound):
		config = engine.DefaultConfig()
		if saveErr := m.Save(config); saveErr != nil {
			m.log.WithError(saveErr).Warn("failed to write default configuration")
		} else {
			m.log.Info("wrote default configuration")
		}

	default:
		m.log.WithError(err).Error("falling back to default configuration")
		config = engine.DefaultConfig()
	}

	m.mu.Lock()
	m.current = config
	m.mu.Unlock()

	return config
}

// Current returns the last configuration loaded or saved, or the defaults
func (m *Manager) Current() *engine.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return engine.DefaultConfig()
	}
	return m.current
}

// Marshal renders a configuration as commented YAML
func Marshal(config *engine.Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return buf.Bytes(), nil
}
