package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routefleet/fleetd/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a service configuration file",
	Long:  "Validate a fleetd service configuration file (JSON or YAML) without starting anything.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid: %d environments, %d system endpoints\n",
			args[0], len(cfg.Environments), len(cfg.SystemEndpoints))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
