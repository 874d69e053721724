// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper registers defaults and ENV lookup on the global viper.
// Precedence: ENV > ./sift.yaml > ~/.config/sift/config.yaml > defaults
func InitViper() {
	viper.SetConfigType(ConfigType)
	for _, k := range Keys {
		viper.SetDefault(k.Name, k.Default)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()
}

// LoadConfig merges the user file and then the repo file into the global
// viper. A bad repo file is an error; a bad user file is only logged so
// `sift config` can still repair it.
func LoadConfig() error {
	for _, scope := range []ConfigScope{ScopeUser, ScopeRepo} {
		path := getConfigPath(scope)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		if err := validateConfigFile(scope); err != nil {
			if scope == ScopeRepo {
				return err
			}
			log.Warn("user config has an invalid setting", "err", err)
		}

		viper.SetConfigFile(path)
		if err := viper.MergeInConfig(); err != nil {
			return fmt.Errorf("failed to read %s config file: %w", getScopeName(scope), err)
		}
	}
	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetCatalogSource returns where the catalog document is read from
func GetCatalogSource() string {
	return viper.GetString("catalog.source")
}

// GetCatalogTimeout returns the remote catalog timeout. Invalid values fall
// back to the registry default.
func GetCatalogTimeout() time.Duration {
	d, err := time.ParseDuration(viper.GetString("catalog.timeout"))
	if err != nil || d <= 0 {
		log.Warn("invalid catalog.timeout, using default", "value", viper.GetString("catalog.timeout"))
		k, _ := LookupKey("catalog.timeout")
		d, _ = time.ParseDuration(k.Default.(string))
	}
	return d
}

// GetFeatureSuppression returns the features.suppression policy name
func GetFeatureSuppression() string {
	return viper.GetString("features.suppression")
}

// GetQuickConfirm returns whether a category pick jumps straight to the items
func GetQuickConfirm() bool {
	return viper.GetBool("pick.quick-confirm")
}

// GetGhostCapToggles returns whether stage toggles stop at the stage maximum
func GetGhostCapToggles() bool {
	return viper.GetBool("ghost.cap-toggles")
}

// validateConfigFile checks every key set in the scope's file
func validateConfigFile(scope ConfigScope) error {
	v, err := readScope(scope)
	if err != nil || v == nil {
		return err
	}

	keys := v.AllKeys()
	slices.Sort(keys)
	for _, key := range keys {
		if err := ValidateKeyScope(key, scope); err != nil {
			return fmt.Errorf("invalid key in %s: %w", getConfigPath(scope), err)
		}
		if err := ValidateValue(key, v.Get(key), scope); err != nil {
			return fmt.Errorf("invalid value in %s: %w", getConfigPath(scope), err)
		}
	}
	return nil
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	// config key -> flag name
	flagsToBind := map[string]string{
		"use-tui":        "use-tui",
		"log-level":      "log-level",
		"catalog.source": "catalog",
	}

	for key, flagName := range flagsToBind {
		if err := viper.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}
