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
		Long: `Init writes a commented ` + config.DefaultConfigFile + ` file. The same file
configures csv2ignore (the "ignore" section) and wpscan (the "scan" section).

Examples:
  # Create .wpkit.yaml in the current directory
  csv2ignore init

  # Write somewhere else, overwriting an existing file
  csv2ignore init -f -o ~/.config/wpkit/config.yaml`,
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
	fmt.Fprintln(out, "\nEdit the \"ignore\" section to change:")
	fmt.Fprintln(out, "  - the output file and write mode")
	fmt.Fprintln(out, "  - the action and path column names")
	fmt.Fprintln(out, "  - the marker that selects a row")
	return nil
}
