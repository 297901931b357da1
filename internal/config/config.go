package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LAUNCHER"

// newViper layers defaults, LAUNCHER_* environment variables, an optional config file and
// bound flags.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

// optionalUint16 returns nil unless key was set by a flag, env var or config file.
func optionalUint16(v *viper.Viper, key string) (*uint16, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	raw := v.GetInt(key)
	if raw < 0 || raw > 0xffff {
		return nil, fmt.Errorf("%s out of range: %d", key, raw)
	}
	value := uint16(raw)
	return &value, nil
}
