package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/routefleet/fleetd/pkg/endpoint"
)

var (
	addMethod      string
	addPath        string
	addDescription string
	addEnvironment string
	addStatus      string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new endpoint definition",
	Long: `Add an endpoint definition to the server.

When --path is not given, an interactive form collects the endpoint fields.`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addMethod, "method", "m", "GET", "HTTP method")
	addCmd.Flags().StringVarP(&addPath, "path", "p", "", "Endpoint path (e.g. /drivers)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addEnvironment, "environment", "e", "", "Environment id to bind to")
	addCmd.Flags().StringVar(&addStatus, "status", "ACTIVE", "Initial status (ACTIVE, TESTING, DEPRECATED, DISABLED)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("path") {
		if err := addForm(); err != nil {
			return err
		}
	}
	if addPath == "" {
		return errors.New("path is required")
	}

	def := &endpoint.Definition{
		Method:        endpoint.Method(strings.ToUpper(addMethod)),
		Path:          addPath,
		Description:   addDescription,
		EnvironmentID: addEnvironment,
		Status:        endpoint.Status(strings.ToUpper(addStatus)),
	}

	client := NewClient(adminURL)
	created, err := client.CreateEndpoint(def)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(created)
	}
	fmt.Printf("Created endpoint %s: %s %s\n", created.ID, created.Method, created.Path)
	return nil
}

// addForm collects endpoint fields interactively.
func addForm() error {
	envOptions := []huh.Option[string]{huh.NewOption("(none — use active client config)", "")}
	if envs, err := NewClient(adminURL).ListEnvironments(); err == nil {
		for _, env := range envs {
			envOptions = append(envOptions, huh.NewOption(env.Name, env.ID))
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint path").
				Placeholder("/drivers/:id").
				Value(&addPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("HTTP method").
				Options(
					huh.NewOption("GET", "GET"),
					huh.NewOption("POST", "POST"),
					huh.NewOption("PUT", "PUT"),
					huh.NewOption("PATCH", "PATCH"),
					huh.NewOption("DELETE", "DELETE"),
				).
				Value(&addMethod),
			huh.NewSelect[string]().
				Title("Environment").
				Options(envOptions...).
				Value(&addEnvironment),
			huh.NewInput().
				Title("Description").
				Value(&addDescription),
		),
	)
	return form.Run()
}
