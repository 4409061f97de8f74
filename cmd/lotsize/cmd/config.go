package cmd

import (
	"fmt"

	"github.com/rustyeddy/lotsize/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, check or print calculator settings",
	Long: `Manage calculator configuration files.

Subcommands:
  init     - Write the built-in defaults to a file
  validate - Load a file and report what it sets
  show     - Print the settings in effect after .env and environment overrides

Examples:
  lotsize config init -o lotsize.yaml
  lotsize config validate -f lotsize.yaml
  lotsize config show --config lotsize.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to a file",
	Long: `Write the built-in defaults to a YAML or JSON file, chosen by extension.

Keep the API key out of the file: put LOTSIZE_API_KEY in the environment or
in a .env file instead.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configValidateCmd, configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "lotsize.yaml", "file to write (.yaml, .yml or .json)")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "file to check (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("write defaults: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Wrote default settings to %s\n", configInitOutput)
	fmt.Fprintf(out, "  Use them with: lotsize calc --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s is valid\n", configValidatePath)
	fmt.Fprintf(out, "  Account: $%.2f %s, risking %g%% with a %g pip default stop\n",
		cfg.Account.Capital, cfg.Account.Currency, cfg.Risk.Percent, cfg.Risk.StopPips)
	fmt.Fprintf(out, "  Rates:   %s\n", cfg.Rates.Provider)
	fmt.Fprintf(out, "  Gold:    $%.2f/oz, %g per pip x %g oz\n", cfg.Gold.Price, cfg.Gold.PipSize, cfg.Gold.ContractOunces)
	fmt.Fprintf(out, "  Journal: %s %s\n", cfg.Journal.Type, cfg.Journal.Path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shown := *cfg
	if shown.Rates.APIKey != "" {
		shown.Rates.APIKey = "********"
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
