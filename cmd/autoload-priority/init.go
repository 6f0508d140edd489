package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/autoload-priority/internal/config"
	"github.com/quantmind-br/autoload-priority/internal/tui"
)

func (c *cli) initCmd() *cobra.Command {
	var (
		output     string
		accessible bool
	)

	cmd := &cobra.Command{
		Use:   "init [project-dir]",
		Short: "Create a config file interactively",
		Long: `Walks through the settings and writes them to a config file.
The package step offers every installed package that declares always-load files;
the current configuration, if any, seeds the answers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}

			saved, err := tui.Run(tui.Options{
				Config:     cfg,
				Accessible: accessible,
				SaveFunc: func(cfg *config.Config) error {
					return config.Save(cfg, output)
				},
			})
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), tui.MutedStyle.Render("Aborted, nothing written."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.BoxStyle.Render(fmt.Sprintf("%s %s\n%d packages, %d fragments, root files: %t",
				tui.SuccessStyle.Render("✓ Saved"), output,
				len(saved.Promote.Packages), len(saved.Promote.Files), saved.Promote.Root)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.ConfigName+".yaml", "Config file to write")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use a screen-reader friendly prompt mode")

	return cmd
}
