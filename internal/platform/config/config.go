package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "PROGRESS_CIRCLE"
	DefaultPackage = "progress_circle"

	KeyDataDir    = "data"
	KeyPackage    = "package"
	KeyDecks      = "decks"
	KeyLogLevel   = "log-level"
	KeyLogFile    = "log-file"
	KeyConfigFile = "config"
)

type Config struct {
	DataDir     string
	PackageName string
	AddonsDir   string
	DBPath      string
	SurfacePath string
	DecksPath   string
	LogLevel    string
	LogFile     string
}

type Options struct {
	DataDir     string
	PackageName string
	DecksPath   string
	LogLevel    string
	LogFile     string
}

func New(opts Options) (Config, error) {
	if opts.DataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	pkg := strings.TrimSpace(opts.PackageName)
	if pkg == "" {
		pkg = DefaultPackage
	}
	if strings.ContainsAny(pkg, `/\`) || pkg == "." || pkg == ".." {
		return Config{}, fmt.Errorf("invalid package name %q", pkg)
	}
	level := strings.ToLower(strings.TrimSpace(opts.LogLevel))
	if level == "" {
		level = "info"
	}
	decks := opts.DecksPath
	if decks == "" {
		decks = filepath.Join(opts.DataDir, "decks.yaml")
	}
	stateDir := filepath.Join(opts.DataDir, ".progress-circle")
	return Config{
		DataDir:     opts.DataDir,
		PackageName: pkg,
		AddonsDir:   filepath.Join(opts.DataDir, "addons"),
		DBPath:      filepath.Join(stateDir, "journal.db"),
		SurfacePath: filepath.Join(stateDir, "overlay.html"),
		DecksPath:   decks,
		LogLevel:    level,
		LogFile:     opts.LogFile,
	}, nil
}

// NewViper returns a viper instance reading PROGRESS_CIRCLE_* environment
// variables. Command flags are bound on top of it by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyDataDir, ".")
	v.SetDefault(KeyPackage, DefaultPackage)
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// Load resolves the configuration with precedence flags > env > config file > defaults.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return New(Options{
		DataDir:     v.GetString(KeyDataDir),
		PackageName: v.GetString(KeyPackage),
		DecksPath:   v.GetString(KeyDecks),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFile:     v.GetString(KeyLogFile),
	})
}
