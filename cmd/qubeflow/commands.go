package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/qubeflow/qubeflow/pkg/aeonmi"
	"github.com/qubeflow/qubeflow/pkg/cmd"
	"github.com/qubeflow/qubeflow/pkg/log"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

var (
	errWorkflowInvalid = errors.New("workflow is invalid")
	errMissingFile     = errors.New("a workflow file is required")
)

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "qubeflow",
		Usage:                 "Validate and compile workflow files",
		EnableShellCompletion: true,
		Writer:                stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Aliases:   []string{"v"},
				Usage:     "Check a workflow file for graph and security issues",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the validation result as JSON",
					},
					&cli.StringFlag{
						Name:    "policy-mode",
						Usage:   "Quantum security policy evaluation (first-discovery, all-paths)",
						Value:   string(validation.PolicyFirstDiscovery),
						Sources: cli.EnvVars("POLICY_MODE"),
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					return runValidate(ctx, command, stdout)
				},
			},
			{
				Name:      "compile",
				Aliases:   []string{"c"},
				Usage:     "Render a workflow file as Aeonmi source",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the source to this file instead of stdout",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					return runCompile(ctx, command, stdout)
				},
			},
			{
				Name:  "node-types",
				Usage: "List the built-in node types",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the node types as JSON",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					return runNodeTypes(ctx, command, stdout)
				},
			},
		},
	}
}

func commandLogger(command *cli.Command) *slog.Logger {
	return log.New(os.Stderr, command.String("log-level"), "text").With("module", "cli")
}

// loadWorkflow reads a JSON or YAML workflow file; the extension decides the format.
func loadWorkflow(path string) (*models.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var workflow models.Workflow

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &workflow)
	default:
		err = json.Unmarshal(data, &workflow)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow file %s: %w", path, err)
	}

	return &workflow, nil
}

func fileArg(command *cli.Command) (string, error) {
	path := command.Args().First()
	if path == "" {
		return "", errMissingFile
	}

	return path, nil
}

func runValidate(ctx context.Context, command *cli.Command, stdout io.Writer) error {
	logger := commandLogger(command)

	path, err := fileArg(command)
	if err != nil {
		return err
	}

	mode, err := validation.ParsePolicyMode(command.String("policy-mode"))
	if err != nil {
		return err
	}

	workflow, err := loadWorkflow(path)
	if err != nil {
		return err
	}

	result := validation.ValidateWorkflow(workflow, validation.WithPolicyMode(mode))

	logger.DebugContext(ctx, "Validated workflow", "file", path, "valid", result.Valid, "issues", len(result.Issues))

	if command.Bool("json") {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(stdout, path, result)
	}

	if !result.Valid {
		return errWorkflowInvalid
	}

	return nil
}

func printResult(w io.Writer, path string, result validation.Result) {
	if result.Valid {
		fmt.Fprintf(w, "%s: valid\n", path)

		return
	}

	fmt.Fprintf(w, "%s: %d issue(s)\n", path, len(result.Issues))

	for _, issue := range result.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

func runCompile(ctx context.Context, command *cli.Command, stdout io.Writer) error {
	logger := commandLogger(command)

	path, err := fileArg(command)
	if err != nil {
		return err
	}

	workflow, err := loadWorkflow(path)
	if err != nil {
		return err
	}

	source := aeonmi.Compile(workflow)

	out := command.String("out")
	if out == "" {
		_, err := io.WriteString(stdout, source)

		return err
	}

	err = os.WriteFile(out, []byte(source), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logger.InfoContext(ctx, "Compiled workflow", "file", path, "out", out)

	return nil
}

func runNodeTypes(_ context.Context, command *cli.Command, stdout io.Writer) error {
	specs := cmd.NewRegistry(commandLogger(command)).All()

	if command.Bool("json") {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(specs)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCATEGORY\tIN\tOUT")

	for _, spec := range specs {
		var in, out []string

		for _, port := range spec.Ports {
			if port.IsInput() {
				in = append(in, port.ID)
			} else {
				out = append(out, port.ID)
			}
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", spec.Type, spec.Category, strings.Join(in, ","), strings.Join(out, ","))
	}

	return tw.Flush()
}
