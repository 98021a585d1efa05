package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/cache"
	"github.com/thoree/pedtools/pkg/pedio"
	"github.com/thoree/pedtools/pkg/plot"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"

	// plotCacheTTL bounds how long rendered diagrams are kept.
	plotCacheTTL = 7 * 24 * time.Hour
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output  string // output file path (default derived from input)
	format  string // output format: svg, png, or dot
	marker  int    // 1-based marker index to show genotypes for (0 = none)
	noCache bool   // bypass the artifact cache
}

// plotCommand creates the plot command for rendering pedigree diagrams.
func (c *CLI) plotCommand() *cobra.Command {
	opts := plotOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render a pedigree diagram",
		Long: `Plot renders a pedigree as a diagram with conventional shapes: squares for
males, ellipses for females, diamonds for unknown sex. With --marker, each
member's genotype at the chosen marker is shown under its label.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runPlot(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default input name with new extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().IntVarP(&opts.marker, "marker", "m", 0, "show genotypes for this marker (1-based index)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the rendered-diagram cache")

	return cmd
}

func (c *CLI) runPlot(path string, opts *plotOpts) error {
	prog := newProgress(c.Logger)

	ped, set, err := pedio.ReadFile(path)
	if err != nil {
		return err
	}

	plotOptions := plot.Options{}
	if opts.marker > 0 {
		m, err := set.Marker(opts.marker)
		if err != nil {
			return err
		}
		plotOptions.Marker = m
	}

	dot := plot.ToDOT(ped, plotOptions)

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, ".toml") + "." + opts.format
	}

	if opts.format == formatDOT {
		if err := os.WriteFile(out, []byte(dot), 0644); err != nil {
			return err
		}
		printSuccess("Wrote DOT graph")
		printFile(out)
		return nil
	}

	data, cached, err := c.renderCached(dot, opts.format, opts.noCache)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d members", ped.Size()))
	printSuccess("Wrote %s diagram", strings.ToUpper(opts.format))
	printStats(ped.Size(), set.Len(), cached)
	printFile(out)
	return nil
}

// renderCached renders DOT output, consulting the artifact cache first.
// The bool reports whether the result came from the cache.
func (c *CLI) renderCached(dot, format string, noCache bool) ([]byte, bool, error) {
	artifacts, err := newCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer artifacts.Close()

	ctx := context.Background()
	key := cache.PlotKey(cache.Hash([]byte(dot)), format)

	if data, hit, err := artifacts.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	spinner := newSpinner("Rendering diagram...")
	spinner.Start()

	var data []byte
	switch format {
	case formatPNG:
		data, err = plot.RenderPNG(dot)
	default:
		data, err = plot.RenderSVG(dot)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, false, err
	}
	spinner.Stop()

	if err := artifacts.Set(ctx, key, data, plotCacheTTL); err != nil {
		c.Logger.Warn("cache write failed", "error", err)
	}
	return data, false, nil
}

func validateFormat(format string) error {
	switch format {
	case formatSVG, formatPNG, formatDOT:
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected svg, png, or dot)", format)
}
