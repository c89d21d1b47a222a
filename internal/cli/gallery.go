package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/render/gallery"
)

type galleryOpts struct {
	output  string
	format  string
	columns int
	title   string
	static  bool
	scale   float64
}

func (c *CLI) galleryCommand() *cobra.Command {
	opts := galleryOpts{columns: 4, scale: 2}

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render a sheet showing all twelve placements",
		Long: `Gallery mounts one tooltip per placement around a sample trigger and draws
where the resolver put each panel. Flipped panels are highlighted. The SVG
is interactive unless --static is given: hovering a trigger highlights its
panel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = "gallery." + format
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			sheet, err := gallery.Layout(gallery.Options{
				Columns:  opts.columns,
				Title:    opts.title,
				Resolver: placement.NewResolver(c.config.Resolver()),
			})
			if err != nil {
				return err
			}
			data, err := render.Export(gallery.RenderSVG(sheet, !opts.static), format, opts.scale)
			if err != nil {
				return err
			}
			if err := writeOutput(opts.output, data); err != nil {
				return err
			}
			prog.done("Rendered gallery")

			flipped := 0
			for _, e := range sheet.Entries {
				if e.Result.Flipped {
					flipped++
				}
			}
			printSuccess("Gallery with %d placements", len(sheet.Entries))
			printFile(opts.output, false)
			if flipped > 0 {
				printWarning("%d placements flipped; try a larger cell size", flipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: gallery.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", render.FormatSVG, "output format: svg, png, pdf")
	cmd.Flags().IntVar(&opts.columns, "columns", opts.columns, "placements per row")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the sheet")
	cmd.Flags().BoolVar(&opts.static, "static", false, "omit the hover script")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}
