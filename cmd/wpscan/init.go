package main

import (
	"fmt"

	"github.com/nao1215/wpkit/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wpkit configuration file",
		Long: `Init writes a commented ` + config.DefaultConfigFile + ` file. The "scan"
section configures wpscan; the "ignore" section configures csv2ignore.

Examples:
  wpscan init
  wpscan init -f -o ~/.config/wpkit/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := config.WriteTemplate(outputPath, force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit the \"scan\" section to configure:")
	fmt.Fprintln(out, "  - directories to exclude")
	fmt.Fprintln(out, "  - extra header labels to collect")
	fmt.Fprintln(out, "  - whether scans are saved for 'wpscan compare'")
	return nil
}
