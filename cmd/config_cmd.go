package cmd

import (
	"fmt"

	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/rocketdigital/taskpilot/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configInitGlobal   bool
	configInitForce    bool
	configInitProvider string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the taskpilot configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .taskpilot.yaml",
	Long: `Write a configuration file with the default ClickUp conventions and the
default model for the chosen provider. Credentials are better kept in the
environment (GEMINI_API_KEY, CLICKUP_API_TOKEN) or in .env.local.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigFileName
		if configInitGlobal {
			p, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		if err := config.WriteFile(afero.NewOsFs(), path, config.NewFileSettings(configInitProvider), configInitForce); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Run: func(cmd *cobra.Command, args []string) {
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintln(cmd.OutOrStdout(), used)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "(none: defaults and environment only)")
	},
}

var configModelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List the known models and their prices",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providers := []string{llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOllama}
		if len(args) == 1 {
			p, err := llm.ValidateProvider(args[0])
			if err != nil {
				return err
			}
			providers = []string{string(p)}
		}

		var models []llm.Model
		for _, p := range providers {
			models = append(models, llm.ModelsForProvider(p)...)
		}

		out := cmd.OutOrStdout()
		if done, err := writeStructured(out, outputFormat, models); done {
			return err
		}
		rows := make([][]string, len(models))
		for i, m := range models {
			def := ""
			if m.IsDefault {
				def = "*"
			}
			rows[i] = []string{m.ProviderID, m.ID, def, fmt.Sprintf("$%.3f / $%.3f", m.InputPer1M, m.OutputPer1M)}
		}
		ui.RenderList(out, "Modelos", []string{"Proveedor", "Modelo", "Def.", "Entrada / salida (1M tokens)"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd, configModelsCmd)
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write $HOME/.taskpilot.yaml instead of ./.taskpilot.yaml")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().StringVar(&configInitProvider, "provider", config.DefaultProvider, "gemini, openai, anthropic or ollama")
}
