package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/spf13/viper"
)

// envFiles are loaded in order. godotenv never overrides a variable that
// is already set, so .env.local wins over .env and the real environment
// wins over both.
var envFiles = []string{".env.local", ".env"}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	for _, f := range envFiles {
		// missing files are fine
		_ = godotenv.Load(f)
	}

	viper.SetEnvPrefix(config.EnvPrefix) // e.g., TASKPILOT_CLICKUP_TOKEN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(config.ConfigName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// defaults and environment only
		case cfgFileFlag != "" && errors.Is(err, os.ErrNotExist):
			fmt.Fprintln(os.Stderr, "Error: specified config file not found:", cfgFileFlag)
		default:
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}
}

// loadAppConfig resolves and validates the configuration. Credentials are
// checked later by the operation that needs them.
func loadAppConfig() (*config.AppConfig, error) {
	return config.Load(viper.GetViper())
}
