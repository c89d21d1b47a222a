package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/render/statechart"
	"github.com/matzehuels/popover/pkg/visibility"
)

type statesOpts struct {
	dir            string
	format         string
	dot            bool
	noCache        bool
	defaultVisible bool
	controlled     bool
	scale          float64
}

func (c *CLI) statesCommand() *cobra.Command {
	opts := statesOpts{dir: ".", scale: 2}

	cmd := &cobra.Command{
		Use:       "states [hover|click|focus]...",
		Short:     "Draw the visibility state machine of each trigger mode",
		Long:      `States renders the show/hide transitions of the given trigger modes (all three by default) with Graphviz. Rendered SVGs are cached.`,
		ValidArgs: []string{"hover", "click", "focus"},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := parseModes(args)
			if err != nil {
				return err
			}
			chartOpts := statechart.Options{
				DefaultVisible: opts.defaultVisible || c.config.Tooltip.DefaultVisible,
				Controlled:     opts.controlled,
			}

			if opts.dot {
				for _, m := range modes {
					fmt.Fprint(cmd.OutOrStdout(), statechart.ToDOT(m, chartOpts))
				}
				return nil
			}

			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			store, err := newCache(opts.noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := loggerFromContext(cmd.Context())
			renderer := statechart.NewRenderer(store, 0, logger)
			prog := newProgress(logger)

			type written struct {
				path   string
				cached bool
			}
			var files []written
			for _, m := range modes {
				svg, cached, err := renderer.Render(cmd.Context(), m, chartOpts)
				if err != nil {
					return err
				}
				data, err := render.Export(svg, format, opts.scale)
				if err != nil {
					return err
				}
				path := filepath.Join(opts.dir, fmt.Sprintf("states-%s.%s", m, format))
				if err := writeOutput(path, data); err != nil {
					return err
				}
				files = append(files, written{path, cached})
			}
			prog.done("Rendered state charts")

			printSuccess("Rendered %d state charts", len(files))
			for _, f := range files {
				printFile(f.path, f.cached)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "output", "o", opts.dir, "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", render.FormatSVG, "output format: svg, png, pdf")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print DOT to stdout instead of rendering")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the render cache")
	cmd.Flags().BoolVar(&opts.defaultVisible, "default-visible", false, "start in the visible state (default: config tooltip.default_visible)")
	cmd.Flags().BoolVar(&opts.controlled, "controlled", false, "draw transitions as requests to an external owner")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseModes parses mode arguments; none means all modes.
func parseModes(args []string) ([]visibility.Mode, error) {
	if len(args) == 0 {
		return visibility.Modes(), nil
	}
	modes := make([]visibility.Mode, 0, len(args))
	for _, a := range args {
		m, err := visibility.ParseMode(a)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}
