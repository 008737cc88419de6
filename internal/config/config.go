package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configDirName  = "diff2md"
	configFileName = "config.json"
	envPrefix      = "DIFF2MD"
)

// Fence language modes.
const (
	LanguageExtension = "extension"
	LanguageLexer     = "lexer"
)

type AppConfig struct {
	Encoding     string `mapstructure:"encoding" json:"encoding"`
	Strict       bool   `mapstructure:"strict" json:"strict"`
	Language     string `mapstructure:"language" json:"language"`
	DiffLanguage string `mapstructure:"diff_language" json:"diff_language"`
	MaxPipeBytes int64  `mapstructure:"max_pipe_bytes" json:"max_pipe_bytes"`
	PreviewStyle string `mapstructure:"preview_style" json:"preview_style"`
}

func Defaults() AppConfig {
	return AppConfig{
		Encoding:     "utf-8",
		Language:     LanguageExtension,
		DiffLanguage: "diff",
		PreviewStyle: "auto",
	}
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads the config file at path. A missing or blank file yields
// the defaults; DIFF2MD_* environment variables override file values.
func LoadFromPath(path string) (AppConfig, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return AppConfig{}, err
	}
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return normalize(cfg)
}

func setDefaults(v *viper.Viper, d AppConfig) {
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("language", d.Language)
	v.SetDefault("diff_language", d.DiffLanguage)
	v.SetDefault("max_pipe_bytes", d.MaxPipeBytes)
	v.SetDefault("preview_style", d.PreviewStyle)
}

func normalize(cfg AppConfig) (AppConfig, error) {
	d := Defaults()
	cfg.Encoding = strings.ToLower(strings.TrimSpace(cfg.Encoding))
	if cfg.Encoding == "" {
		cfg.Encoding = d.Encoding
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	switch cfg.Language {
	case "":
		cfg.Language = d.Language
	case LanguageExtension, LanguageLexer:
	default:
		return AppConfig{}, fmt.Errorf("language %q must be %q or %q", cfg.Language, LanguageExtension, LanguageLexer)
	}
	cfg.DiffLanguage = strings.TrimSpace(cfg.DiffLanguage)
	if cfg.DiffLanguage == "" {
		cfg.DiffLanguage = d.DiffLanguage
	}
	if strings.ContainsAny(cfg.DiffLanguage, " `\n") {
		return AppConfig{}, fmt.Errorf("diff_language %q cannot contain spaces or backticks", cfg.DiffLanguage)
	}
	if cfg.MaxPipeBytes < 0 {
		return AppConfig{}, fmt.Errorf("max_pipe_bytes must be >= 0, got %d", cfg.MaxPipeBytes)
	}
	cfg.PreviewStyle = strings.TrimSpace(cfg.PreviewStyle)
	if cfg.PreviewStyle == "" {
		cfg.PreviewStyle = d.PreviewStyle
	}
	return cfg, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
