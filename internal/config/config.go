// Package config loads binder configuration from file, environment and
// defaults. Components receive the loaded Config explicitly; nothing reads
// ambient global state.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Config is the full binder configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input" yaml:"input"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	TOC      TOCConfig      `mapstructure:"toc" yaml:"toc"`
	Renderer RendererConfig `mapstructure:"renderer" yaml:"renderer"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// InputConfig locates the catalog and source PDFs.
type InputConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`                 // root of language-keyed attachment files
	Spreadsheet string `mapstructure:"spreadsheet" yaml:"spreadsheet"` // xlsx catalog path
	Sheet       string `mapstructure:"sheet" yaml:"sheet"`
	TitlePage   string `mapstructure:"title_page" yaml:"title_page"` // optional front matter PDF
	Foreword    string `mapstructure:"foreword" yaml:"foreword"`     // optional front matter PDF
}

// OutputConfig locates generated artifacts, all relative to Dir.
type OutputConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Merged  string `mapstructure:"merged" yaml:"merged"`
	TOCPDF  string `mapstructure:"toc_pdf" yaml:"toc_pdf"`
	TOCHTML string `mapstructure:"toc_html" yaml:"toc_html"`
}

// TOCConfig tunes table-of-contents layout estimation.
type TOCConfig struct {
	// EntriesPerPage is the assumed TOC row capacity per page. Historical
	// runs used 15 and 25 depending on row height; measure your template
	// rather than guessing.
	EntriesPerPage int `mapstructure:"entries_per_page" yaml:"entries_per_page"`
}

// RendererConfig names the external tools binder shells out to.
type RendererConfig struct {
	HTMLCommand string `mapstructure:"html_command" yaml:"html_command"` // HTML -> PDF
	TextCommand string `mapstructure:"text_command" yaml:"text_command"` // PDF -> text (pdftotext)
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir:         "input-files",
			Spreadsheet: "input-files/input-pdfs.xlsx",
			Sheet:       "Attachments Prep",
			TitlePage:   "input-files/title-page.pdf",
			Foreword:    "input-files/foreword.pdf",
		},
		Output: OutputConfig{
			Dir:     "output-files",
			Merged:  "merged-attachments.pdf",
			TOCPDF:  "toc-coverpage.pdf",
			TOCHTML: "toc-coverpage.html",
		},
		TOC: TOCConfig{
			EntriesPerPage: 25,
		},
		Renderer: RendererConfig{
			HTMLCommand: "weasyprint",
			TextCommand: "pdftotext",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Manager handles loading configuration.
type Manager struct {
	mu     sync.RWMutex
	config *Config
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("input", defaults.Input)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("toc", defaults.TOC)
	viper.SetDefault("renderer", defaults.Renderer)
	viper.SetDefault("log", defaults.Log)

	// Environment variables with BINDER_ prefix
	viper.SetEnvPrefix("BINDER")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.binder")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Binder configuration
# Paths are relative to the working directory unless absolute.
# External tools must be on PATH: weasyprint and pdftotext (poppler-utils).

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
