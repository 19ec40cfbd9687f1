package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/soulguide/internal/config"
	"github.com/diogo/soulguide/internal/models"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration in use, the files it is read from and the
API key source (masked).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps)
		},
	}

	cmd.AddCommand(newConfigInitCmd(deps))
	return cmd
}

func newConfigInitCmd(deps *Dependencies) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

// modelNames lists the known models with the kind of turn each one serves
func modelNames() []string {
	var names []string
	for _, m := range models.AllModels() {
		kind := "text"
		if m.Images {
			kind = "image"
		}
		names = append(names, fmt.Sprintf("%s (%s)", m.Name, kind))
	}
	return names
}

func showConfig(deps *Dependencies) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	personaPath, err := config.GetPersonaPath()
	if err != nil {
		return err
	}
	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}
	key, _ := config.LookupAPIKey()

	fmt.Fprintf(deps.Stdout, "Config file:  %s\n", configPath)
	fmt.Fprintf(deps.Stdout, "Persona file: %s\n", personaPath)
	fmt.Fprintf(deps.Stdout, "Log file:     %s\n", logPath)
	fmt.Fprintf(deps.Stdout, "API key:      %s\n", config.MaskKey(key))
	fmt.Fprintf(deps.Stdout, "Models:       %s\n\n", strings.Join(modelNames(), ", "))
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
