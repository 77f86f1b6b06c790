package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milburnr/fcs-site-sub010/internal/export"
)

func newBuildCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export every route as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := a.loadSite()
			if err != nil {
				return err
			}
			r, err := a.renderer()
			if err != nil {
				return err
			}
			assets, err := a.assets()
			if err != nil {
				return err
			}
			e, err := export.New(export.Deps{
				Site:     site,
				Renderer: r,
				Builder:  a.builder(),
				Assets:   assets,
				Workers:  a.cfg.Export.Workers,
				Logger:   a.logger.Named("export"),
			})
			if err != nil {
				return err
			}
			m, err := e.Export(cmd.Context(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d routes to %s (build %s)\n", len(m.Routes), out, m.BuildID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}
