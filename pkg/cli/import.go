package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routefleet/fleetd/pkg/portability"
)

var (
	importDryRun      bool
	importFormat      string
	importEnvironment string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import endpoint configuration from a file",
	Long: `Import a configuration file into the server.

Native exports replace the full configuration. Postman Collections and
OpenAPI documents add endpoints, bound to the environment given with
--environment. The format is auto-detected unless --format is set.
Use --dry-run to preview what an import would do without applying it.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview the import without applying it")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Force format: native, postman, openapi")
	importCmd.Flags().StringVarP(&importEnvironment, "environment", "e", "", "Target environment id for postman/openapi imports")
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	client := NewClient(adminURL)

	if importDryRun {
		preview, err := client.Validate(data)
		if err != nil {
			return err
		}
		return printPreview(preview)
	}

	format := portability.ParseFormat(importFormat)
	if importFormat != "" && format == portability.FormatUnknown {
		return fmt.Errorf("unknown format %q (want native, postman, or openapi)", importFormat)
	}
	if format == portability.FormatUnknown {
		format = portability.DetectFormat(data)
	}

	var result *ImportResult
	switch format {
	case portability.FormatNative:
		result, err = client.Import(data)
	case portability.FormatPostman:
		result, err = client.ImportPostman(data, importEnvironment)
	case portability.FormatOpenAPI:
		result, err = client.ImportOpenAPI(data, importEnvironment)
	default:
		return fmt.Errorf("could not detect the format of %s", args[0])
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	if result.Environments > 0 {
		fmt.Printf("Imported %d environments and %d endpoints\n", result.Environments, result.Endpoints)
	} else {
		fmt.Printf("Imported %d endpoints\n", result.Endpoints)
	}
	return nil
}

func printPreview(preview *portability.Preview) error {
	if jsonOutput {
		return printJSON(preview)
	}
	if !preview.Valid {
		fmt.Printf("Invalid %s payload: %s\n", orUnknown(string(preview.Format)), preview.Error)
		return fmt.Errorf("validation failed")
	}
	fmt.Printf("Format:       %s\n", preview.Format)
	fmt.Printf("Environments: %d\n", len(preview.Environments))
	fmt.Printf("Endpoints:    %d\n", len(preview.Endpoints))
	for _, def := range preview.Endpoints {
		fmt.Printf("  %s %s\n", def.Method, def.Path)
	}
	if len(preview.Duplicates) > 0 {
		fmt.Printf("Duplicates:   %s\n", strings.Join(preview.Duplicates, ", "))
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
