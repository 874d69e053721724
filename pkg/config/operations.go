// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ConfigScope selects which config file an operation writes
type ConfigScope int

const (
	ScopeRepo ConfigScope = iota // ./sift.yaml, kept next to a catalog
	ScopeUser                    // ~/.config/sift/config.yaml
)

// ConfigValue is a resolved setting and where it came from
type ConfigValue struct {
	Key    string
	Value  any
	Source string
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

func getConfigPath(scope ConfigScope) string {
	if scope == ScopeUser {
		return filepath.Join(GlobalPaths.ConfigDir, ConfigFileName+DefaultConfigExt)
	}
	return LocalConfigFile + DefaultConfigExt
}

func getScopeName(scope ConfigScope) string {
	if scope == ScopeUser {
		return "user"
	}
	return "repo"
}

// sourceLabel is how list and get name a scope's file
func sourceLabel(scope ConfigScope) string {
	if scope == ScopeUser {
		return "from ~/.config/sift/" + ConfigFileName + DefaultConfigExt
	}
	return "from ./" + LocalConfigFile + DefaultConfigExt
}

// readScope loads a single scope's file into its own viper instance. A
// missing file yields nil without error.
func readScope(scope ConfigScope) (*viper.Viper, error) {
	path := getConfigPath(scope)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigType(ConfigType)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s config %s: %w", getScopeName(scope), path, err)
	}
	return v, nil
}

// writeScope replaces the scope's file with settings
func writeScope(scope ConfigScope, settings map[string]any) error {
	path := getConfigPath(scope)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(ConfigType)
	if err := v.MergeConfigMap(settings); err != nil {
		return err
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetConfigValue validates valueStr for key and writes it to the scope's file
func SetConfigValue(key, valueStr string, scope ConfigScope) error {
	if err := ValidateKeyScope(key, scope); err != nil {
		return err
	}
	k, _ := LookupKey(key)

	value, err := parseValue(k, valueStr)
	if err != nil {
		return err
	}
	if err := ValidateValue(key, value, scope); err != nil {
		return err
	}

	v, err := readScope(scope)
	if err != nil {
		return err
	}
	if v == nil {
		v = viper.New()
	}
	v.Set(key, value)

	return writeScope(scope, v.AllSettings())
}

// GetConfigValue resolves key through ENV, both files and the defaults
func GetConfigValue(key string) (*ConfigValue, error) {
	if _, ok := LookupKey(key); !ok {
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}

	files, err := readScopes()
	if err != nil {
		return nil, err
	}
	cv := files.resolve(key)
	return &cv, nil
}

// UnsetConfigValue removes key from the scope's file. Sections left empty
// are removed with it.
func UnsetConfigValue(key string, scope ConfigScope) error {
	v, err := readScope(scope)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%s config file does not exist: %s", getScopeName(scope), getConfigPath(scope))
	}
	if !v.IsSet(key) {
		return fmt.Errorf("key '%s' not found in %s config", key, getScopeName(scope))
	}

	settings := v.AllSettings()
	removeKey(settings, strings.Split(key, "."))
	return writeScope(scope, settings)
}

// ListConfigValues resolves every registered key, sorted by name
func ListConfigValues() ([]ConfigValue, error) {
	files, err := readScopes()
	if err != nil {
		return nil, err
	}

	values := make([]ConfigValue, 0, len(Keys))
	for _, k := range Keys {
		values = append(values, files.resolve(k.Name))
	}
	return values, nil
}

// scopeFiles holds both config files, each read on its own so a value can be
// traced back to the file that set it
type scopeFiles struct {
	repo, user *viper.Viper
}

func readScopes() (scopeFiles, error) {
	repo, err := readScope(ScopeRepo)
	if err != nil {
		return scopeFiles{}, err
	}
	user, err := readScope(ScopeUser)
	if err != nil {
		return scopeFiles{}, err
	}
	return scopeFiles{repo: repo, user: user}, nil
}

// resolve applies ENV > repo > user > default. The value comes from the
// global viper so bound flags still win.
func (f scopeFiles) resolve(key string) ConfigValue {
	cv := ConfigValue{Key: key, Value: viper.Get(key), Source: "default"}

	if env := keyToEnvVar(key); os.Getenv(env) != "" {
		cv.Source = "from ENV: " + env
		return cv
	}
	for _, s := range []struct {
		v     *viper.Viper
		scope ConfigScope
	}{{f.repo, ScopeRepo}, {f.user, ScopeUser}} {
		if s.v != nil && s.v.IsSet(key) {
			cv.Source = sourceLabel(s.scope)
			break
		}
	}
	return cv
}

// parseValue converts command line text into the key's value type
func parseValue(k Key, valueStr string) (any, error) {
	if k.Kind != KindBool {
		return valueStr, nil
	}

	switch strings.ToLower(valueStr) {
	case "yes", "on", "enable", "enabled":
		return true, nil
	case "no", "off", "disable", "disabled":
		return false, nil
	}
	b, err := strconv.ParseBool(valueStr)
	if err != nil {
		return nil, fmt.Errorf("key '%s' expects a boolean (true/false, on/off, yes/no), got '%s'", k.Name, valueStr)
	}
	return b, nil
}

// keyToEnvVar maps catalog.source to SIFT_CATALOG_SOURCE
func keyToEnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

// removeKey deletes path from nested settings and prunes parents it empties
func removeKey(m map[string]any, path []string) {
	if len(path) == 1 {
		delete(m, path[0])
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		return
	}
	removeKey(child, path[1:])
	if len(child) == 0 {
		delete(m, path[0])
	}
}
