package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// FileName is the config file name inside the user's home directory.
	FileName = ".youtrack.yml"
	// EnvFileName is the optional dotenv file holding credential overrides.
	EnvFileName = ".youtrack.env"
)

const (
	// TrackerYouTrack selects the YouTrack REST backend.
	TrackerYouTrack = "youtrack"
	// TrackerGitHub selects the GitHub issue search backend.
	TrackerGitHub = "github"
)

// Environment variables that override values from the config file.
const (
	EnvYouTrackHost     = "YOUTRACK_HOST"
	EnvYouTrackUsername = "YOUTRACK_USERNAME"
	EnvYouTrackPassword = "YOUTRACK_PASSWORD"
	EnvYouTrackToken    = "YOUTRACK_TOKEN"
	EnvGitHubToken      = "GITHUB_TOKEN"
)

// YouTrack holds the connection details of the youtrack section.
type YouTrack struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Token    string `yaml:"token"`
}

// GitHub holds the connection details of the github section.
type GitHub struct {
	Token  string `yaml:"token"`
	APIURL string `yaml:"api_url"`
}

// Variable is one entry of the variables section.
type Variable struct {
	Name  string
	Value string
}

// Alias is one entry of the aliases section.
type Alias struct {
	Name  string
	Query string
}

// Config is the immutable runtime configuration loaded once per run.
// Variables and Aliases keep the order of the config document.
type Config struct {
	Path      string
	Tracker   string
	YouTrack  YouTrack
	GitHub    GitHub
	Variables []Variable
	Aliases   []Alias
}

// Alias returns the alias with the given name.
func (c Config) Alias(name string) (Alias, bool) {
	for _, alias := range c.Aliases {
		if alias.Name == name {
			return alias, true
		}
	}
	return Alias{}, false
}

// AliasNames returns alias names in document order.
func (c Config) AliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for _, alias := range c.Aliases {
		names = append(names, alias.Name)
	}
	return names
}

// Validate checks tracker selection and connection settings.
func (c Config) Validate() error {
	switch c.Tracker {
	case TrackerYouTrack:
		if c.YouTrack.Host == "" {
			return NewValidationError("youtrack.host", "is required")
		}
		if err := validateBaseURL(c.YouTrack.Host); err != nil {
			return NewValidationError("youtrack.host", err.Error())
		}
	case TrackerGitHub:
		if c.GitHub.APIURL != "" {
			if err := validateBaseURL(c.GitHub.APIURL); err != nil {
				return NewValidationError("github.api_url", err.Error())
			}
		}
	default:
		return NewValidationError("tracker", fmt.Sprintf("unsupported tracker %q, want %q or %q", c.Tracker, TrackerYouTrack, TrackerGitHub))
	}
	return nil
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// Loader loads the configuration document.
type Loader interface {
	Load() (Config, error)
}

// LoaderOptions configures the file loader.
type LoaderOptions struct {
	// Path is the YAML config file. Empty means DefaultPath.
	Path string
	// EnvPath is the optional dotenv file. Empty means DefaultEnvPath.
	EnvPath string
	// LookupEnv reads process environment variables. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// DefaultPath returns ~/.youtrack.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// DefaultEnvPath returns ~/.youtrack.env.
func DefaultEnvPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, EnvFileName), nil
}

// NewLoader constructs the default configuration loader.
func NewLoader(opts LoaderOptions) Loader {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	return &fileLoader{opts: opts}
}

type fileLoader struct {
	opts LoaderOptions
}

func (l *fileLoader) Load() (Config, error) {
	path := l.opts.Path
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, WrapError("resolve path", err)
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, &NotFoundError{Path: path}
	}
	if err != nil {
		return Config{}, WrapError("read file", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, WrapError(fmt.Sprintf("parse %s", path), err)
	}
	cfg.Path = path

	env, err := l.environment()
	if err != nil {
		return Config{}, WrapError("load environment", err)
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return Config{}, WrapError("validate", err)
	}
	return cfg, nil
}

// environment returns a lookup where process variables win over the dotenv file.
func (l *fileLoader) environment() (func(string) string, error) {
	envPath := l.opts.EnvPath
	if envPath == "" {
		defaultPath, err := DefaultEnvPath()
		if err != nil {
			return nil, err
		}
		envPath = defaultPath
	}

	fileValues := map[string]string{}
	if _, err := os.Stat(envPath); err == nil {
		values, readErr := godotenv.Read(envPath)
		if readErr != nil {
			return nil, fmt.Errorf("read dotenv file %q: %w", envPath, readErr)
		}
		fileValues = values
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat dotenv file %q: %w", envPath, err)
	}

	return func(key string) string {
		if value, ok := l.opts.LookupEnv(key); ok && value != "" {
			return value
		}
		return fileValues[key]
	}, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	override := func(dst *string, key string) {
		if value := getenv(key); value != "" {
			*dst = value
		}
	}
	override(&c.YouTrack.Host, EnvYouTrackHost)
	override(&c.YouTrack.Username, EnvYouTrackUsername)
	override(&c.YouTrack.Password, EnvYouTrackPassword)
	override(&c.YouTrack.Token, EnvYouTrackToken)
	override(&c.GitHub.Token, EnvGitHubToken)
}
