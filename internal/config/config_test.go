package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected base URL %q", cfg.Server.BaseURL)
	}
	if cfg.UI.HistoryLimit != 5 {
		t.Errorf("expected history limit 5, got %d", cfg.UI.HistoryLimit)
	}
	if cfg.ResultDuration() != 5*time.Second {
		t.Errorf("expected 5s result ttl, got %v", cfg.ResultDuration())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout())
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  base_url: "http://tracker.internal:8080"
  timeout: 10
ui:
  history_limit: 3
  result_ttl: 0
  notifications: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ACTIONBOARD_UI_HISTORY_LIMIT", "8")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.BaseURL != "http://tracker.internal:8080" {
		t.Errorf("unexpected base URL %q", cfg.Server.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.RequestTimeout())
	}
	if cfg.UI.HistoryLimit != 8 {
		t.Errorf("env override not applied: history limit %d", cfg.UI.HistoryLimit)
	}
	if cfg.ResultDuration() != 0 {
		t.Errorf("expected success messages to persist, got ttl %v", cfg.ResultDuration())
	}
	if !cfg.UI.Notifications {
		t.Error("expected notifications enabled")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://127.0.0.1:9999"
	cfg.UI.Debug = true

	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL || !loaded.UI.Debug {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestResolveTokenPriority(t *testing.T) {
	keyring.MockInit()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg := DefaultConfig()

	token, err := ResolveToken(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "" {
		t.Errorf("expected no token, got %q", token)
	}

	if err := SaveToken("stored"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if token, _ := ResolveToken(cfg); token != "stored" {
		t.Errorf("expected keyring token, got %q", token)
	}

	cfg.Auth.APIToken = "from-config"
	if token, _ := ResolveToken(cfg); token != "from-config" {
		t.Errorf("expected config token, got %q", token)
	}

	t.Setenv(TokenEnv, " from-env ")
	if token, _ := ResolveToken(cfg); token != "from-env" {
		t.Errorf("expected env token, got %q", token)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if token, _ := GetToken(); token != "" {
		t.Errorf("expected token cleared, got %q", token)
	}
}

func TestTokenFileFallback(t *testing.T) {
	keyring.MockInitWithError(errors.New("no keyring available"))
	t.Cleanup(keyring.MockInit)
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	if err := SaveToken("  secret \n"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	path := filepath.Join(dataHome, appName, credFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected credentials file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("credentials file mode = %v, want 0600", info.Mode().Perm())
	}

	if token, err := ResolveToken(DefaultConfig()); err != nil || token != "secret" {
		t.Errorf("expected file token, got %q (%v)", token, err)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("credentials file should be removed")
	}
}

func TestSaveTokenRejectsBlank(t *testing.T) {
	if err := SaveToken("   "); err == nil {
		t.Error("expected an error for a blank token")
	}
}
