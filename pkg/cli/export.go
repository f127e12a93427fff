package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the server's endpoint configuration",
	Long:  "Export the full endpoint configuration (environments and endpoints) as a native JSON document, to stdout or a file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(adminURL)
		data, err := client.Export()
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Printf("Configuration exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write export to file instead of stdout")
}
