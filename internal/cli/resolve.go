package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/config"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
)

// resolveOpts holds the flags of the resolve command. Geometry flags are
// raw "x,y,w,h" and "w,h" strings.
type resolveOpts struct {
	trigger       string
	viewport      string
	panel         string
	position      string
	all           bool
	minPanelWidth float64
	json          bool
}

func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{minPanelWidth: -1}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute where a panel goes next to a trigger",
		Long: `Resolve computes the panel style for a trigger rectangle, a viewport (the
document body) and a panel size. The panel flips to the opposite side when
the requested side has no room.`,
		Example: `  popover resolve --trigger 100,50,40,20 --panel 120,30
  popover resolve --trigger 10,50,40,20 --panel 120,30 --position "left top"
  popover resolve --trigger 100,50,40,20 --panel 120,30 --all --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := runResolve(opts, c.config)
			if err != nil {
				return err
			}
			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if opts.all {
					return enc.Encode(results)
				}
				return enc.Encode(results[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), resultTable(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.trigger, "trigger", "", "trigger rectangle as x,y,width,height (required)")
	cmd.Flags().StringVar(&opts.panel, "panel", "", "panel size as width,height (required)")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "viewport rectangle as x,y,width,height (default: config viewport at 0,0)")
	cmd.Flags().StringVarP(&opts.position, "position", "p", "", "placement token, e.g. \"top\" or \"left bottom\" (default: config tooltip.position)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "resolve all twelve placements")
	cmd.Flags().Float64Var(&opts.minPanelWidth, "min-panel-width", opts.minPanelWidth, "right-flip threshold (default: config placement.min_panel_width)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("trigger")
	_ = cmd.MarkFlagRequired("panel")

	return cmd
}

// runResolve parses the flags and resolves one or all placements.
func runResolve(opts resolveOpts, cfg config.Config) ([]placement.Result, error) {
	trigger, err := geom.ParseRect(opts.trigger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "--trigger")
	}
	panel, err := geom.ParseSize(opts.panel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "--panel")
	}
	viewport := cfg.ViewportSize().At(geom.Point{})
	if opts.viewport != "" {
		if viewport, err = geom.ParseRect(opts.viewport); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "--viewport")
		}
	}

	rc := cfg.Resolver()
	if opts.minPanelWidth >= 0 {
		rc.MinPanelWidth = opts.minPanelWidth
	}
	resolver := placement.NewResolver(rc)

	var targets []placement.Placement
	if opts.all {
		targets = placement.All()
	} else {
		pos := opts.position
		if pos == "" {
			pos = cfg.Tooltip.Position
		}
		p, err := placement.Parse(pos)
		if err != nil {
			return nil, err
		}
		targets = []placement.Placement{p}
	}

	results := make([]placement.Result, len(targets))
	for i, p := range targets {
		results[i] = resolver.Resolve(trigger, viewport, panel, p)
	}
	return results, nil
}
