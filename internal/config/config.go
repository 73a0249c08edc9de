package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configDir = ".agentchat"
const configFile = "config.toml"

const (
	DefaultTeam        = "creative-team"
	DefaultAgent       = "research-agent"
	DefaultAssetBase   = "/agentplatform/api"
	DefaultUserTimeout = 5 * time.Second
)

type Config struct {
	Server        string `toml:"server"`
	WebURL        string `toml:"web_url,omitempty"`
	AssetBase     string `toml:"asset_base,omitempty"`
	Team          string `toml:"team,omitempty"`
	Agent         string `toml:"agent,omitempty"`
	Mode          string `toml:"mode,omitempty"`
	UserTimeoutMS int    `toml:"user_timeout_ms,omitempty"`
	StateFile     string `toml:"state_file,omitempty"`
	LogFile       string `toml:"log_file,omitempty"`
	LogLevel      string `toml:"log_level,omitempty"`
	Profile       string `toml:"-"`
}

// envOverrides maps environment variables onto config fields. Set values
// win over the file.
var envOverrides = []struct {
	name  string
	field func(*Config) *string
}{
	{"AGENTCHAT_SERVER", func(c *Config) *string { return &c.Server }},
	{"AGENTCHAT_WEB_URL", func(c *Config) *string { return &c.WebURL }},
	{"AGENTCHAT_ASSET_BASE", func(c *Config) *string { return &c.AssetBase }},
	{"AGENTCHAT_TEAM", func(c *Config) *string { return &c.Team }},
	{"AGENTCHAT_AGENT", func(c *Config) *string { return &c.Agent }},
	{"AGENTCHAT_MODE", func(c *Config) *string { return &c.Mode }},
	{"AGENTCHAT_LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func configPath(profile string) (string, error) {
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	filename := configFile
	if profile != "" {
		filename = fmt.Sprintf("config-%s.toml", profile)
	}
	return filepath.Join(dir, filename), nil
}

// Load reads the profile's config file and applies environment overrides.
// A missing file is not an error.
func Load(profile string) (*Config, error) {
	cfg, err := loadFile(profile)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads the profile's config file without environment overrides.
// Commands that save the config use it so env values are not persisted.
func LoadFile(profile string) (*Config, error) {
	return loadFile(profile)
}

func loadFile(profile string) (*Config, error) {
	path, err := configPath(profile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Profile: profile}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Profile = profile
	return &cfg, nil
}

func (c *Config) applyEnv() {
	for _, o := range envOverrides {
		if v := strings.TrimSpace(os.Getenv(o.name)); v != "" {
			*o.field(c) = v
		}
	}
}

func (c *Config) Save() error {
	path, err := configPath(c.Profile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Set assigns a config value by its `set` command key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "server":
		c.Server = strings.TrimRight(value, "/")
	case "web", "web_url":
		c.WebURL = strings.TrimRight(value, "/")
	case "asset-base", "asset_base":
		c.AssetBase = value
	case "team":
		c.Team = value
	case "agent":
		c.Agent = value
	case "mode":
		if value != "agent" && value != "team" {
			return fmt.Errorf("invalid mode %q (want agent or team)", value)
		}
		c.Mode = value
	case "log-level", "log_level":
		c.LogLevel = value
	case "log-file", "log_file":
		c.LogFile = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// --- Resolved values ---

// WebOrigin is where generated assets are served; it defaults to Server.
func (c *Config) WebOrigin() string {
	if c.WebURL != "" {
		return c.WebURL
	}
	return c.Server
}

func (c *Config) TeamID() string {
	if c.Team != "" {
		return c.Team
	}
	return DefaultTeam
}

func (c *Config) AgentID() string {
	if c.Agent != "" {
		return c.Agent
	}
	return DefaultAgent
}

func (c *Config) AssetBasePath() string {
	if c.AssetBase != "" {
		return "/" + strings.Trim(c.AssetBase, "/")
	}
	return DefaultAssetBase
}

func (c *Config) UserTimeout() time.Duration {
	if c.UserTimeoutMS > 0 {
		return time.Duration(c.UserTimeoutMS) * time.Millisecond
	}
	return DefaultUserTimeout
}

// StatePath is the sqlite file holding local session state, one per profile.
func (c *Config) StatePath() (string, error) {
	if c.StateFile != "" {
		return c.StateFile, nil
	}
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	name := "state.db"
	if c.Profile != "" {
		name = fmt.Sprintf("state-%s.db", c.Profile)
	}
	return filepath.Join(dir, name), nil
}

func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agentchat.log"), nil
}

func (c *Config) profileFlag() string {
	if c.Profile == "" {
		return ""
	}
	return " --profile " + c.Profile
}

func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("not configured. Run: agentchat%s set server <url>", c.profileFlag())
	}
	if c.Mode != "" && c.Mode != "agent" && c.Mode != "team" {
		return fmt.Errorf("invalid mode %q. Run: agentchat%s set mode agent|team", c.Mode, c.profileFlag())
	}
	return nil
}

func ListProfiles() ([]string, error) {
	dir, err := homeDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config directory: %w", err)
	}
	var profiles []string
	for _, e := range entries {
		name := e.Name()
		if name == configFile {
			profiles = append(profiles, "default")
			continue
		}
		if strings.HasPrefix(name, "config-") && strings.HasSuffix(name, ".toml") {
			profiles = append(profiles, strings.TrimSuffix(strings.TrimPrefix(name, "config-"), ".toml"))
		}
	}
	return profiles, nil
}

func ProfileName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
