package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/visibility"
)

func (c *CLI) demoCommand() *cobra.Command {
	var mode, position string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Try a tooltip interactively in the terminal",
		Long: `Demo renders a trigger and its tooltip on a character grid. Move the pointer
with the arrow keys, press enter to click, tab to toggle focus, m to cycle the
trigger mode and p to cycle the placement.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			if mode != "" {
				if _, err := visibility.ParseMode(mode); err != nil {
					return err
				}
				cfg.Tooltip.Trigger = mode
			}
			if position != "" {
				if _, err := placement.Parse(position); err != nil {
					return err
				}
				cfg.Tooltip.Position = position
			}

			// The program sends the real terminal size before the first frame.
			m, err := newDemoModel(cfg, 80, 24)
			if err != nil {
				return err
			}
			c.Logger.Debug("starting demo", "mode", cfg.Tooltip.Trigger, "position", cfg.Tooltip.Position)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "trigger mode: hover, click or focus (default: config tooltip.trigger)")
	cmd.Flags().StringVar(&position, "position", "", "placement token (default: config tooltip.position)")
	return cmd
}
