// Package auth manages CallHub account credentials.
//
// Credentials live in a YAML file (accounts.yaml) and can be overlaid by
// environment variables of the form CALLHUB_<ACCOUNT>_API_KEY /
// CALLHUB_<ACCOUNT>_USERNAME / CALLHUB_<ACCOUNT>_BASE_URL. The legacy
// unprefixed CALLHUB_API_KEY maps to the "default" account. A .env file in
// the working directory is honored if present.
package auth

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://api-na1.callhub.io"

// Account holds the credentials for one CallHub account.
type Account struct {
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// ConfigError reports missing or invalid account credentials. It is fatal to
// any operation needing them and is never retried.
type ConfigError struct {
	Account string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Account != "" {
		return fmt.Sprintf("account %q: %s", e.Account, e.Reason)
	}
	return e.Reason
}

// Store loads and persists account credentials.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a credential store backed by the YAML file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

var apiKeyPattern = regexp.MustCompile(`^CALLHUB_(.+)_API_KEY$`)

// Load returns all configured accounts, merging the YAML file with
// environment variables. Env vars win over file entries of the same name.
func (s *Store) Load() (map[string]Account, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	accounts := make(map[string]Account)

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &accounts); err != nil {
			return nil, fmt.Errorf("parse credentials file %s: %w", s.path, err)
		}
	case os.IsNotExist(err):
		// First run, nothing saved yet.
	default:
		return nil, fmt.Errorf("read credentials file %s: %w", s.path, err)
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		m := apiKeyPattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		name := strings.ToLower(m[1])
		// CALLHUB_ACCOUNT selects the default account, it is not one itself.
		if name == "account" {
			continue
		}
		prefix := "CALLHUB_" + m[1]
		accounts[name] = Account{
			Username: os.Getenv(prefix + "_USERNAME"),
			APIKey:   value,
			BaseURL:  envOr(prefix+"_BASE_URL", defaultBaseURL),
		}
	}

	// Legacy unprefixed form.
	if key := os.Getenv("CALLHUB_API_KEY"); key != "" {
		if _, exists := accounts["default"]; !exists {
			accounts["default"] = Account{
				Username: os.Getenv("CALLHUB_USERNAME"),
				APIKey:   key,
				BaseURL:  envOr("CALLHUB_BASE_URL", defaultBaseURL),
			}
		}
	}

	return accounts, nil
}

// Get resolves one account by name. An empty name falls back to the
// CALLHUB_ACCOUNT environment variable, then "default".
func (s *Store) Get(name string) (Account, error) {
	accounts, err := s.Load()
	if err != nil {
		return Account{}, err
	}
	if len(accounts) == 0 {
		return Account{}, &ConfigError{Reason: "no CallHub credentials found; use the configureAccount tool or 'callhub accounts add'"}
	}

	if name == "" {
		name = os.Getenv("CALLHUB_ACCOUNT")
	}
	if name == "" {
		name = "default"
	}
	name = strings.ToLower(name)

	acct, ok := accounts[name]
	if !ok {
		return Account{}, &ConfigError{Account: name, Reason: "not found in credentials"}
	}
	if acct.APIKey == "" {
		return Account{}, &ConfigError{Account: name, Reason: "missing api_key"}
	}
	if acct.BaseURL == "" {
		acct.BaseURL = defaultBaseURL
	}
	return acct, nil
}

// Save writes all accounts to the YAML file, replacing its contents.
func (s *Store) Save(accounts map[string]Account) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := yaml.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials file %s: %w", s.path, err)
	}
	s.logger.Info("credentials saved", "path", s.path, "accounts", len(accounts))
	return nil
}

// Set adds or updates one account and persists the file.
func (s *Store) Set(name string, acct Account) error {
	if name == "" {
		return &ConfigError{Reason: "account name is required"}
	}
	if acct.APIKey == "" {
		return &ConfigError{Account: name, Reason: "api_key is required"}
	}
	if acct.BaseURL == "" {
		acct.BaseURL = defaultBaseURL
	}

	accounts, err := s.Load()
	if err != nil {
		return err
	}
	accounts[strings.ToLower(name)] = acct
	return s.Save(accounts)
}

// Delete removes one account and persists the file.
func (s *Store) Delete(name string) error {
	accounts, err := s.Load()
	if err != nil {
		return err
	}
	name = strings.ToLower(name)
	if _, ok := accounts[name]; !ok {
		return &ConfigError{Account: name, Reason: "not found in credentials"}
	}
	delete(accounts, name)
	return s.Save(accounts)
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
