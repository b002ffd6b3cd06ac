package config

import (
	"os"
	"path/filepath"
)

// GetHomeDir returns the user's home directory.
// It's a variable to allow overriding in tests.
var GetHomeDir = os.UserHomeDir

// ConfigFileName is the file name InitConfig looks for in ./ and $HOME.
const ConfigFileName = ConfigName + ".yaml"

// GlobalConfigPath returns $HOME/.taskpilot.yaml.
func GlobalConfigPath() (string, error) {
	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}
