// Package cliconfig stores admin credentials of the CLI, per server host.
package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

var ErrCredentialNotFound = errors.New("credential not found")

type Credential struct {
	Token string `json:"token"`
}

type CLIConfig struct {
	Credentials map[string]*Credential `json:"credentials"`

	path string
}

// DefaultPath returns ~/.voxauth/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".voxauth", "credentials.json"), nil
}

// Load reads the credentials at path. A missing file yields an empty config.
func Load(path string) (*CLIConfig, error) {
	cfg := &CLIConfig{
		Credentials: make(map[string]*Credential),
		path:        path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials file '%s': %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding credentials file '%s': %w", path, err)
	}
	if cfg.Credentials == nil {
		cfg.Credentials = make(map[string]*Credential)
	}
	return cfg, nil
}

func (c *CLIConfig) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory '%s': %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file '%s': %w", c.path, err)
	}
	return nil
}

func (c *CLIConfig) GetCredential(server string) (*Credential, error) {
	host, err := hostOf(server)
	if err != nil {
		return nil, err
	}
	cred, ok := c.Credentials[host]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return cred, nil
}

func (c *CLIConfig) SetCredential(server, token string) error {
	host, err := hostOf(server)
	if err != nil {
		return err
	}
	c.Credentials[host] = &Credential{Token: token}
	return nil
}

// RemoveCredential reports whether a credential was stored for server.
func (c *CLIConfig) RemoveCredential(server string) (bool, error) {
	host, err := hostOf(server)
	if err != nil {
		return false, err
	}
	_, ok := c.Credentials[host]
	delete(c.Credentials, host)
	return ok, nil
}

func hostOf(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parsing server URL '%s': %w", server, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server URL '%s' has no host", server)
	}
	return u.Host, nil
}
