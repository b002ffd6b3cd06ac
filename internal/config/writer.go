package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteFile when the file is present and
// overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

// FileSettings is the subset of AppConfig written by "taskpilot config init".
// Keys mirror the viper keys read back by Load.
type FileSettings struct {
	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"apiKey,omitempty"`
	} `yaml:"llm"`
	ClickUp struct {
		Token               string `yaml:"token,omitempty"`
		WorkspaceName       string `yaml:"workspace_name"`
		SprintSpace         string `yaml:"sprint_space"`
		SprintFolderKeyword string `yaml:"sprint_folder_keyword"`
	} `yaml:"clickup"`
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

// NewFileSettings returns settings pre-filled with the defaults for provider.
func NewFileSettings(provider string) FileSettings {
	if provider == "" {
		provider = DefaultProvider
	}
	var s FileSettings
	s.LLM.Provider = provider
	s.LLM.Model = llm.DefaultModelForProvider(provider)
	s.ClickUp.WorkspaceName = DefaultWorkspaceName
	s.ClickUp.SprintSpace = DefaultSprintSpace
	s.ClickUp.SprintFolderKeyword = DefaultSprintFolderKeyword
	s.Server.Addr = DefaultServerAddr
	s.Server.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	return s
}

// WriteFile serializes s to path. The file may hold credentials, so it is
// created with 0600.
func WriteFile(fs afero.Fs, path string, s FileSettings, overwrite bool) error {
	if _, err := llm.ValidateProvider(s.LLM.Provider); err != nil {
		return err
	}
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	body, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	content := append([]byte("# taskpilot configuration\n"), body...)

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(fs, path, content, os.FileMode(0o600))
}
