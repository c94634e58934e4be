// Package config handles the configuration for myvault: default file
// locations, display behavior, and key derivation parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the myvault configuration.
type Config struct {
	VaultPath          string        `yaml:"vault_path"`
	AuditPath          string        `yaml:"audit_path"`
	LogPath            string        `yaml:"log_path"`
	ShowSecrets        bool          `yaml:"show_secrets"`
	ConfirmDestructive bool          `yaml:"confirm_destructive"`
	ClipboardTTL       time.Duration `yaml:"clipboard_ttl"`
	KDF                KDFConfig     `yaml:"kdf"`
}

// KDFConfig represents Argon2id parameters for newly written vaults.
type KDFConfig struct {
	Memory      uint32 `yaml:"memory"`
	Iterations  uint32 `yaml:"iterations"`
	Parallelism uint8  `yaml:"parallelism"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "myvault")
	return &Config{
		VaultPath:          filepath.Join(dataDir, "vault.enc"),
		AuditPath:          filepath.Join(dataDir, "audit.db"),
		LogPath:            filepath.Join(dataDir, "myvault.log"),
		ShowSecrets:        false,
		ConfirmDestructive: true,
		ClipboardTTL:       30 * time.Second,
		KDF: KDFConfig{
			Memory:      65536, // 64 MB
			Iterations:  3,
			Parallelism: 4,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "myvault", "config.yaml"), nil
}

// Load loads configuration from file, creating a default config file when
// none exists. An empty path returns the defaults without touching disk.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	cleanPath := filepath.Clean(configPath)
	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		if err := Save(cfg, cleanPath); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to file.
func Save(cfg *Config, configPath string) error {
	cleanPath := filepath.Clean(configPath)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
