package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teskalabs/asab-console/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envServerURL  = "ASAB_CONSOLE_SERVER"
	envTenant     = "ASAB_CONSOLE_TENANT"
	envConfigFile = "ASAB_CONSOLE_CONFIG"
	envWidth      = "ASAB_CONSOLE_WIDTH"
	envHeight     = "ASAB_CONSOLE_HEIGHT"
	envShowFooter = "ASAB_CONSOLE_FOOTER"
	envVerbose    = "ASAB_CONSOLE_VERBOSE"
	envTrace      = "ASAB_CONSOLE_TRACE"
	envLogFile    = "ASAB_CONSOLE_LOG_FILE"
	envRefresh    = "ASAB_CONSOLE_REFRESH"
	envStartPath  = "ASAB_CONSOLE_PATH"
)

const defaultRefresh = 30 * time.Second

// fileConfig is the optional YAML config file. Flags and environment
// variables override its values; the sidebar policy only lives here.
type fileConfig struct {
	Server  string `yaml:"server"`
	Tenant  string `yaml:"tenant"`
	Refresh string `yaml:"refresh"`
	Path    string `yaml:"path"`
	Sidebar struct {
		Hidden []string `yaml:"hidden"`
		Order  []string `yaml:"order"`
	} `yaml:"sidebar"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("asab-console", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	server := fs.String("server", envOrDefault(env, envServerURL, ""), "base URL of the ASAB API gateway")
	tenant := fs.String("tenant", envOrDefault(env, envTenant, ""), "tenant passed to library requests")
	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to an optional YAML config file")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaultRefresh), "library poll interval")
	startPath := fs.String("path", envOrDefault(env, envStartPath, ""), "screen to open at startup, e.g. /library or /config")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *refresh <= 0 {
		return Config{}, fmt.Errorf("refresh must be positive (got %s)", *refresh)
	}

	var file fileConfig
	if *configFile != "" {
		loaded, err := loadFile(*configFile)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	serverURL := firstNonEmpty(*server, file.Server)
	if serverURL == "" {
		return Config{}, fmt.Errorf("server URL is required (flag -server, %s, or the config file)", envServerURL)
	}
	tenantName := firstNonEmpty(*tenant, file.Tenant)
	start := firstNonEmpty(*startPath, file.Path)
	if start != "" && !strings.HasPrefix(start, "/") {
		return Config{}, fmt.Errorf("start path must begin with / (got %q)", start)
	}

	interval := *refresh
	if !flagWasSet(fs, "refresh") && env[envRefresh] == "" && file.Refresh != "" {
		parsed, err := time.ParseDuration(file.Refresh)
		if err != nil {
			return Config{}, fmt.Errorf("parse refresh in config file: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("refresh in config file must be positive (got %s)", parsed)
		}
		interval = parsed
	}

	cfg := Config{
		App: app.Config{
			ServerURL:       serverURL,
			Tenant:          tenantName,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
			Verbose:         *verbose,
			RefreshInterval: interval,
			StartPath:       start,
			SidebarHidden:   file.Sidebar.Hidden,
			SidebarOrder:    file.Sidebar.Order,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"server":  serverURL,
			"tenant":  tenantName,
			"config":  *configFile,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"refresh": interval.String(),
			"path":    start,
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
