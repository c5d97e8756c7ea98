package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/errors"
	"github.com/lumentrace/lumen/pkg/pipeline"
)

// renderFlags holds the raw command-line flags for the render command.
// Numeric flags stay strings until parseRenderOptions so every bad value
// surfaces as a typed argument error naming the flag.
type renderFlags struct {
	output  string   // output image path
	width   string   // image width in pixels
	samples string   // samples per pixel
	threads string   // worker count
	assets  []string // extra texture files
	noCache bool     // disable the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene description to a PNG image",
		Long: `Render reads the scene description given by --config and renders it to a
PNG image by path tracing. Width, sample count, and thread count come from
flags, falling back to the user config file and built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.parseRenderOptions(flags)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache, newStageReporter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Render(cmd.Context(), opts)
			if err != nil {
				return err
			}

			printRenderResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "output.png", "output image file (.png)")
	cmd.Flags().StringVarP(&flags.width, "width", "w", "", "image width in pixels")
	cmd.Flags().StringVarP(&flags.samples, "samples", "s", "", "samples per pixel")
	cmd.Flags().StringVarP(&flags.threads, "threads", "t", "", "worker threads (default: one per CPU)")
	cmd.Flags().StringArrayVar(&flags.assets, "asset", nil, "extra texture file to load (repeatable)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// parseRenderOptions converts raw flags plus config-file defaults into
// validated pipeline options. Every branch returns; no input can panic.
func (c *CLI) parseRenderOptions(flags renderFlags) (pipeline.RenderOptions, error) {
	opts := pipeline.RenderOptions{
		ScenePath:       c.scenePath,
		OutputPath:      flags.output,
		Width:           c.Config.Render.Width,
		SamplesPerPixel: c.Config.Render.Samples,
		Threads:         c.Config.Render.Threads,
		AssetPaths:      flags.assets,
		NoCache:         flags.noCache,
	}

	if flags.width != "" {
		v, err := errors.ParseUint("width", flags.width)
		if err != nil {
			return opts, err
		}
		opts.Width = v
	}
	if flags.samples != "" {
		v, err := errors.ParseUint("samples", flags.samples)
		if err != nil {
			return opts, err
		}
		opts.SamplesPerPixel = v
	}
	if flags.threads != "" {
		v, err := errors.ParseUint("threads", flags.threads)
		if err != nil {
			return opts, err
		}
		opts.Threads = v
	}

	err := opts.ValidateAndSetDefaults()
	return opts, err
}

// printRenderResult prints the post-render summary.
func printRenderResult(result *pipeline.RenderResult) {
	if result.CacheHit {
		printSuccess("Rendered %dx%d %s", result.Width, result.Height, styleCached.Render(iconCached))
	} else {
		printSuccess("Rendered %dx%d in %s", result.Width, result.Height,
			result.Duration.Round(time.Millisecond))
	}
	printFile(result.OutputPath)
	if result.FailedSamples > 0 {
		printWarning("%d samples failed and were dropped", result.FailedSamples)
	}
	if result.RunID != "" {
		printDetail("run %s", result.RunID)
	}
	printNextStep("View it", fmt.Sprintf("open %s", result.OutputPath))
}
