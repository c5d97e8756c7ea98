package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/asset"
	"github.com/lumentrace/lumen/pkg/engine"
	"github.com/lumentrace/lumen/pkg/pipeline"
	"github.com/lumentrace/lumen/pkg/scene"
	"github.com/lumentrace/lumen/pkg/treeviz"
)

// inspectCommand creates the inspect command for examining scene structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var treePath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print scene statistics and export the BVH tree",
		Long: `Inspect loads the scene given by --config, compiles it, and prints object,
material, and acceleration-structure statistics. With --tree it also writes
the BVH as a Graphviz diagram (.dot or .svg).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(c.scenePath)
			if err != nil {
				return err
			}

			// Missing textures degrade to flat albedo during inspection;
			// render is where they must resolve.
			assets, err := asset.LoadBundle(sc.AssetRefs())
			if err != nil {
				c.Logger.Debug("assets unavailable for inspection", "err", err)
				assets, _ = asset.LoadBundle(nil)
			}

			cfg := engine.Compile(sc, assets, pipeline.DefaultWidth, 1)
			printSceneStats(c.scenePath, sc, assets, cfg)

			if treePath != "" {
				if err := writeTree(cfg, treePath); err != nil {
					return err
				}
				printFile(treePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&treePath, "tree", "", "write the BVH tree as .dot or .svg")

	return cmd
}

// printSceneStats renders the inspection table.
func printSceneStats(path string, sc *scene.Scene, assets *asset.Bundle, cfg *engine.Config) {
	stats := cfg.World.Stats()

	rows := [][]string{
		{"Scene", path},
		{"Objects", fmt.Sprintf("%d", len(sc.Objects))},
		{"Materials", fmt.Sprintf("%d", len(sc.Materials))},
		{"Assets", fmt.Sprintf("%d", assets.Len())},
		{"Aspect ratio", fmt.Sprintf("%.3f", sc.Camera.AspectRatio)},
		{"BVH nodes", fmt.Sprintf("%d", stats.Nodes)},
		{"BVH leaves", fmt.Sprintf("%d", stats.Leaves)},
		{"BVH depth", fmt.Sprintf("%d", stats.MaxDepth)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray).PaddingRight(2)
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// writeTree exports the BVH as DOT or rendered SVG, chosen by extension.
func writeTree(cfg *engine.Config, path string) error {
	dot := treeviz.ToDOT(cfg.World)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot":
		return os.WriteFile(path, []byte(dot), 0644)
	case ".svg":
		svg, err := treeviz.RenderSVG(dot)
		if err != nil {
			return err
		}
		return os.WriteFile(path, svg, 0644)
	default:
		return fmt.Errorf("unsupported tree format %q (use .dot or .svg)", filepath.Ext(path))
	}
}
