package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fivetwenty-io/apicli/internal/constants"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// ConfigPersister writes acquired tokens into the CLI config file so later
// runs reuse them as access_token and token_type.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
}

// NewConfigPersister creates a new config persister for the file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// PersistToken updates the token keys and keeps every other key in the file.
func (p *ConfigPersister) PersistToken(token *oauth2.Token) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.path == "" {
		return constants.ErrConfigFileNotFound
	}

	settings, err := p.load()
	if err != nil {
		return err
	}

	settings["access_token"] = token.AccessToken
	settings["token_type"] = token.TokenType

	if token.Expiry.IsZero() {
		delete(settings, "token_expires_at")
	} else {
		settings["token_expires_at"] = token.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(p.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(p.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (p *ConfigPersister) load() (map[string]any, error) {
	settings := map[string]any{}

	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if settings == nil {
		settings = map[string]any{}
	}

	return settings, nil
}
