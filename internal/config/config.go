package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	homeDir   = ".devscripts"
	envPrefix = "DEVSCRIPTS"
)

// Setting keys.
const (
	KeyLogLevel       = "log_level"
	KeyPackageManager = "package_manager"
	KeyNodeEngine     = "node_engine"
	KeySharedConfig   = "shared_config"
)

var defaults = map[string]string{
	KeyLogLevel:       "info",
	KeyPackageManager: "pnpm",
	KeyNodeEngine:     ">=16.0.0",
	KeySharedConfig:   "@salesforce/dev-config",
}

// Dir returns the path to the devscripts config directory (~/.devscripts/).
// DEVSCRIPTS_HOME overrides it.
func Dir() string {
	if dir := os.Getenv(envPrefix + "_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDir)
	}
	return filepath.Join(home, homeDir)
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// LogLevel returns the configured log level name.
func LogLevel() string { return Get(KeyLogLevel) }

// PackageManager returns the package manager used to run husky.
func PackageManager() string { return Get(KeyPackageManager) }

// NodeEngine returns the engines.node target.
func NodeEngine() string { return Get(KeyNodeEngine) }

// SharedConfig returns the shared tsconfig package that opts a package into
// node engine management.
func SharedConfig() string { return Get(KeySharedConfig) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
