package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/errors"
	"github.com/lumentrace/lumen/pkg/pipeline"
	"github.com/lumentrace/lumen/pkg/scene"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		kind        string
		seed        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a procedurally generated scene description",
		Long: fmt.Sprintf(`Generate writes a procedural scene to the path given by --config, ready to
render or edit. Available kinds: %s.`, strings.Join(kindNames(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.GenerateOptions{ScenePath: c.scenePath}

			if interactive {
				selected, err := pickKind()
				if err != nil {
					return err
				}
				if selected == "" {
					printInfo("Cancelled")
					return nil
				}
				opts.Kind = selected
			} else {
				k, err := scene.ParseKind(kind)
				if err != nil {
					return err
				}
				opts.Kind = k
			}

			if seed != "" {
				v, err := errors.ParseUint("seed", seed)
				if err != nil {
					return err
				}
				opts.Seed = int64(v)
			}

			runner, err := c.newRunner(cmd.Context(), true, newStageReporter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			printSuccess("Generated %s scene in %s",
				StyleHighlight.Render(string(result.Kind)),
				result.Duration.Round(time.Millisecond))
			printFile(result.ScenePath)
			printNextStep("Render it", fmt.Sprintf("lumen render -c %s", result.ScenePath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(scene.KindCover), "scene kind: "+strings.Join(kindNames(), ", "))
	cmd.Flags().StringVar(&seed, "seed", "", "generator seed (default: fixed)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the scene kind interactively")

	return cmd
}

func kindNames() []string {
	kinds := scene.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
