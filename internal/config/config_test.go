package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chatdock/internal/credentials"
	"chatdock/internal/window"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AutoLoginDelay != 2*time.Second {
		t.Errorf("AutoLoginDelay = %v, want 2s", cfg.AutoLoginDelay)
	}
	if cfg.DoubleClickWindow != 300*time.Millisecond {
		t.Errorf("DoubleClickWindow = %v, want 300ms", cfg.DoubleClickWindow)
	}
	if cfg.Credentials.Backend != credentials.BackendFile {
		t.Errorf("Backend = %q", cfg.Credentials.Backend)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "durations and backend",
			yaml: "debug: true\nauto_login_delay: 5s\ndouble_click_window: 250ms\ncredentials:\n  backend: keyring\n",
			check: func(t *testing.T, c *Config) {
				if !c.Debug || c.AutoLoginDelay != 5*time.Second || c.DoubleClickWindow != 250*time.Millisecond {
					t.Errorf("got %+v", c)
				}
				if c.Credentials.Backend != credentials.BackendKeyring {
					t.Errorf("backend = %q", c.Credentials.Backend)
				}
			},
		},
		{
			name: "zero delay allowed",
			yaml: "auto_login_delay: 0s\n",
			check: func(t *testing.T, c *Config) {
				if c.AutoLoginDelay != 0 {
					t.Errorf("AutoLoginDelay = %v, want 0", c.AutoLoginDelay)
				}
			},
		},
		{
			name: "non-positive double click falls back",
			yaml: "double_click_window: -1s\n",
			check: func(t *testing.T, c *Config) {
				if c.DoubleClickWindow != 300*time.Millisecond {
					t.Errorf("DoubleClickWindow = %v", c.DoubleClickWindow)
				}
			},
		},
		{name: "unknown backend", yaml: "credentials:\n  backend: vault\n", wantErr: true},
		{name: "unknown window", yaml: "windows:\n  chatgpt:\n    url: https://example.com\n", wantErr: true},
		{name: "invalid yaml", yaml: "debug: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.yaml)
			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSaveRoundTripKeepsDurationsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.AutoLoginDelay = 3 * time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !Exists(path) {
		t.Fatal("config not written")
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "auto_login_delay: 3s") {
		t.Errorf("duration not written as a string:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.AutoLoginDelay != 3*time.Second {
		t.Errorf("AutoLoginDelay = %v", loaded.AutoLoginDelay)
	}
}

func TestWindowConfigs(t *testing.T) {
	cfg := Default()
	cfg.Windows = map[string]WindowOverride{
		"poe":      {URL: "https://poe.com/chat", Width: 900, UserAgent: "custom"},
		"settings": {Title: "Preferences", UserAgent: "ignored"},
	}
	got := cfg.WindowConfigs()

	poe := got[window.Poe]
	if poe.URL != "https://poe.com/chat" || poe.Width != 900 || poe.Height != 800 || poe.UserAgent != "custom" {
		t.Errorf("poe = %+v", poe)
	}
	if poe.InitScript == "" {
		t.Error("external window lacks init script")
	}

	settings := got[window.Settings]
	if settings.Title != "Preferences" || !settings.Local {
		t.Errorf("settings = %+v", settings)
	}
	if settings.UserAgent != "" || settings.InitScript != "" || len(settings.BrowserArgs) != 0 {
		t.Errorf("settings must not carry external-window options: %+v", settings)
	}

	if got[window.Gemini].URL != "https://gemini.google.com/app" {
		t.Errorf("gemini URL = %q", got[window.Gemini].URL)
	}
}

func TestCredentialsDir(t *testing.T) {
	cfg := Default()
	if !strings.HasSuffix(cfg.CredentialsDir(), filepath.Join("chatdock", "credentials")) {
		t.Errorf("default dir = %q", cfg.CredentialsDir())
	}
	cfg.Credentials.Dir = "/tmp/creds"
	if cfg.CredentialsDir() != "/tmp/creds" {
		t.Errorf("dir = %q", cfg.CredentialsDir())
	}
}

func TestCredentialsDirFollowsConfigFile(t *testing.T) {
	dir := t.TempDir()

	// 文件不存在时同样以配置文件所在目录为根
	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.CredentialsDir(), filepath.Join(dir, "credentials"); got != want {
		t.Errorf("CredentialsDir() = %q, want %q", got, want)
	}

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "debug: true\n")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
	if got, want := cfg.CredentialsDir(), filepath.Join(dir, "credentials"); got != want {
		t.Errorf("CredentialsDir() = %q, want %q", got, want)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "debug: false\n")

	changes := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(c *Config) { changes <- c })
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	// 无关文件不触发
	writeFile(t, filepath.Join(dir, "other.txt"), "x")
	writeFile(t, path, "debug: true\nauto_login_delay: 1s\n")

	select {
	case c := <-changes:
		if !c.Debug || c.AutoLoginDelay != time.Second {
			t.Errorf("reloaded config = %+v", c)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatchIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "debug: false\n")

	changes := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(c *Config) { changes <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, path, "credentials:\n  backend: vault\n")
	select {
	case c := <-changes:
		t.Errorf("invalid config delivered: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}
