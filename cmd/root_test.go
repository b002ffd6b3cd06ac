package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd(t *testing.T) {
	viper.Reset()

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "generative AI model")
	assert.Contains(t, output, "Usage:")
	for _, sub := range []string{"serve", "suggest", "create", "clickup", "mcp", "version"} {
		assert.Contains(t, output, sub)
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.3.0", GetVersion())
}

func TestVersionCmd(t *testing.T) {
	b := new(bytes.Buffer)
	versionCmd.SetOut(b)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, b.String(), "taskpilot 0.3.0")
}

func TestConfigModelsCmd(t *testing.T) {
	b := new(bytes.Buffer)
	configModelsCmd.SetOut(b)

	err := configModelsCmd.RunE(configModelsCmd, []string{"ollama"})
	assert.NoError(t, err)
	assert.Contains(t, b.String(), "llama3.2")
	assert.NotContains(t, b.String(), "gemini")

	err = configModelsCmd.RunE(configModelsCmd, []string{"mistral"})
	assert.Error(t, err)
}
