package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Server: "http://localhost:7777"},
			wantErr: false,
		},
		{
			name:    "valid team mode",
			cfg:     Config{Server: "http://localhost:7777", Mode: "team"},
			wantErr: false,
		},
		{
			name:    "missing server",
			cfg:     Config{Mode: "agent"},
			wantErr: true,
		},
		{
			name:    "bad mode",
			cfg:     Config{Server: "http://localhost:7777", Mode: "swarm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	original := &Config{
		Server:        "http://example.com",
		WebURL:        "https://chat.example.com",
		AssetBase:     "/platform/api",
		Team:          "ops-team",
		Agent:         "writer",
		Mode:          "team",
		UserTimeoutMS: 2500,
	}

	if err := original.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path := filepath.Join(tmpDir, configDir, configFile)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 0600", perm)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Server != original.Server {
		t.Errorf("Server = %q, want %q", loaded.Server, original.Server)
	}
	if loaded.WebOrigin() != original.WebURL {
		t.Errorf("WebOrigin() = %q, want %q", loaded.WebOrigin(), original.WebURL)
	}
	if loaded.TeamID() != "ops-team" {
		t.Errorf("TeamID() = %q, want %q", loaded.TeamID(), "ops-team")
	}
	if loaded.AgentID() != "writer" {
		t.Errorf("AgentID() = %q, want %q", loaded.AgentID(), "writer")
	}
	if loaded.UserTimeout() != 2500*time.Millisecond {
		t.Errorf("UserTimeout() = %v, want 2.5s", loaded.UserTimeout())
	}
}

func TestLoadMissing(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() on missing config returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Server != "" || cfg.Team != "" || cfg.Mode != "" {
		t.Errorf("Load() on missing config returned non-empty fields: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, configDir)
	os.MkdirAll(dir, 0700)
	os.WriteFile(filepath.Join(dir, configFile), []byte("server = \n"), 0600)

	if _, err := Load(""); err == nil {
		t.Error("Load() on malformed config should fail")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{Server: "http://backend:7777"}

	if got := cfg.WebOrigin(); got != "http://backend:7777" {
		t.Errorf("WebOrigin() = %q, want server", got)
	}
	if got := cfg.TeamID(); got != DefaultTeam {
		t.Errorf("TeamID() = %q, want %q", got, DefaultTeam)
	}
	if got := cfg.AgentID(); got != DefaultAgent {
		t.Errorf("AgentID() = %q, want %q", got, DefaultAgent)
	}
	if got := cfg.AssetBasePath(); got != DefaultAssetBase {
		t.Errorf("AssetBasePath() = %q, want %q", got, DefaultAssetBase)
	}
	if got := cfg.UserTimeout(); got != DefaultUserTimeout {
		t.Errorf("UserTimeout() = %v, want %v", got, DefaultUserTimeout)
	}
}

func TestAssetBasePathNormalized(t *testing.T) {
	tests := []struct{ in, want string }{
		{"platform/api/", "/platform/api"},
		{"/x", "/x"},
	}
	for _, tt := range tests {
		cfg := &Config{AssetBase: tt.in}
		if got := cfg.AssetBasePath(); got != tt.want {
			t.Errorf("AssetBasePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if err := (&Config{Server: "http://file.example.com", Team: "file-team"}).Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	t.Setenv("AGENTCHAT_SERVER", "http://env.example.com")
	t.Setenv("AGENTCHAT_MODE", "team")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "http://env.example.com" {
		t.Errorf("Server = %q, want env value", cfg.Server)
	}
	if cfg.Mode != "team" {
		t.Errorf("Mode = %q, want team", cfg.Mode)
	}
	if cfg.Team != "file-team" {
		t.Errorf("Team = %q, want file value", cfg.Team)
	}

	raw, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if raw.Server != "http://file.example.com" {
		t.Errorf("LoadFile Server = %q, want file value", raw.Server)
	}
}

func TestSet(t *testing.T) {
	cfg := &Config{}
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"server", "http://localhost:7777/", false},
		{"team", "ops", false},
		{"mode", "team", false},
		{"mode", "swarm", true},
		{"colour", "blue", true},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}
	if cfg.Server != "http://localhost:7777" {
		t.Errorf("Server = %q, want trailing slash trimmed", cfg.Server)
	}
	if cfg.Mode != "team" {
		t.Errorf("Mode = %q, want team (bad value must not overwrite)", cfg.Mode)
	}
}

func TestLoadSaveProfile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	original := &Config{
		Server:  "http://staging.example.com",
		Profile: "staging",
	}

	if err := original.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path := filepath.Join(tmpDir, configDir, "config-staging.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("profile config file not created at %s: %v", path, err)
	}

	defaultPath := filepath.Join(tmpDir, configDir, configFile)
	if _, err := os.Stat(defaultPath); err == nil {
		t.Error("default config file should not exist")
	}

	loaded, err := Load("staging")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server != original.Server {
		t.Errorf("Server = %q, want %q", loaded.Server, original.Server)
	}
	if loaded.Profile != "staging" {
		t.Errorf("Profile = %q, want %q", loaded.Profile, "staging")
	}

	profiles, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "staging" {
		t.Errorf("ListProfiles() = %v, want [staging]", profiles)
	}
}

func TestStatePathPerProfile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	def, _ := (&Config{}).StatePath()
	staging, _ := (&Config{Profile: "staging"}).StatePath()
	if def == staging {
		t.Errorf("StatePath() should differ per profile, both %q", def)
	}
	if custom, _ := (&Config{StateFile: "/tmp/x.db"}).StatePath(); custom != "/tmp/x.db" {
		t.Errorf("StatePath() = %q, want explicit file", custom)
	}
}

func TestProfileName(t *testing.T) {
	tests := []struct {
		profile string
		want    string
	}{
		{"", "default"},
		{"staging", "staging"},
		{"prod", "prod"},
	}
	for _, tt := range tests {
		got := ProfileName(tt.profile)
		if got != tt.want {
			t.Errorf("ProfileName(%q) = %q, want %q", tt.profile, got, tt.want)
		}
	}
}

func TestValidateProfileHint(t *testing.T) {
	cfg := Config{Profile: "staging"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "--profile staging"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("Validate() error = %q, should contain %q", got, want)
	}
}
