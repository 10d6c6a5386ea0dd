package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxDemoInstances = 1000

// Config holds sample configuration loaded from YAML and env.
type Config struct {
	TestingMode bool

	AppName  string
	LogLevel string

	LaunchOptions map[string]string

	DemoInstances int
	DemoEvents    []string

	MetricsDump bool
}

type fileConfig struct {
	TestingMode *bool `yaml:"testing_mode"`

	App struct {
		Name     string `yaml:"name"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Launch struct {
		Options map[string]string `yaml:"options"`
	} `yaml:"launch"`

	Demo struct {
		Instances *int     `yaml:"instances"`
		Events    []string `yaml:"events"`
	} `yaml:"demo"`

	Metrics struct {
		Dump bool `yaml:"dump"`
	} `yaml:"metrics"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev) relative to the
// working directory. TESTING_MODE and APP_NAME env override the file. Call from project root.
func Load() (*Config, error) {
	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return LoadFile(filepath.Join(cwd, "config", env+".yaml"))
}

// LoadFile reads configuration from the given YAML file, then applies env overrides.
func LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{
		TestingMode: false,
	}
	if fc.TestingMode != nil {
		cfg.TestingMode = *fc.TestingMode
	}
	if v := strings.TrimSpace(os.Getenv("TESTING_MODE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TESTING_MODE must be a boolean, got %q", v)
		}
		cfg.TestingMode = b
	}

	cfg.AppName = strings.TrimSpace(os.Getenv("APP_NAME"))
	if cfg.AppName == "" {
		cfg.AppName = strings.TrimSpace(fc.App.Name)
	}
	if cfg.AppName == "" {
		cfg.AppName = "UnitTesting"
	}
	cfg.LogLevel = strings.TrimSpace(fc.App.LogLevel)

	cfg.LaunchOptions = fc.Launch.Options
	if cfg.LaunchOptions == nil {
		cfg.LaunchOptions = map[string]string{}
	}

	cfg.DemoInstances = 2
	if fc.Demo.Instances != nil {
		cfg.DemoInstances = *fc.Demo.Instances
	}
	cfg.DemoEvents = fc.Demo.Events
	if len(cfg.DemoEvents) == 0 {
		cfg.DemoEvents = []string{"signup"}
	}
	cfg.MetricsDump = fc.Metrics.Dump

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.DemoInstances < 0 || cfg.DemoInstances > maxDemoInstances {
		return fmt.Errorf("demo.instances must be between 0 and %d, got %d", maxDemoInstances, cfg.DemoInstances)
	}
	for i, ev := range cfg.DemoEvents {
		if strings.TrimSpace(ev) == "" {
			return fmt.Errorf("demo.events[%d] must not be empty", i)
		}
	}
	return nil
}
