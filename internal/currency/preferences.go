package currency

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences is the persisted display settings file.
type Preferences struct {
	Currency Code `json:"currency"`
}

// LoadPreference returns the saved display currency. A missing, unreadable
// or invalid file yields PHP.
func LoadPreference(path string) Code {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Base
	}
	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Base
	}
	code, err := Parse(string(prefs.Currency))
	if err != nil {
		return Base
	}
	return code
}

// SavePreference stores code; unknown codes are rejected and nothing is written.
func SavePreference(path, value string) (Code, error) {
	code, err := Parse(value)
	if err != nil {
		return "", err
	}

	var prefs Preferences
	if raw, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(raw, &prefs)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read preferences: %w", err)
	}
	prefs.Currency = code

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create preferences dir: %w", err)
	}
	raw, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", fmt.Errorf("write preferences: %w", err)
	}
	return code, nil
}
