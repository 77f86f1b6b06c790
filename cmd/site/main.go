// Command site serves, exports and checks the Florida Coastal Structures site.
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub010/corpus"
	"github.com/milburnr/fcs-site-sub010/internal/config"
	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/handlers"
	"github.com/milburnr/fcs-site-sub010/internal/observability"
	"github.com/milburnr/fcs-site-sub010/internal/render"
	"github.com/milburnr/fcs-site-sub010/public"
	"github.com/milburnr/fcs-site-sub010/templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "site:", err)
		stop()
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	envFile    string
	contentDir string
	templates  string
	configOpts []config.Option

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd(a *app, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "site",
		Short:         "Florida Coastal Structures marketing site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with local overrides")
	root.PersistentFlags().StringVar(&a.contentDir, "content", "", "content directory (overrides SITE_CONTENT_DIR; empty uses the embedded corpus)")
	root.PersistentFlags().StringVar(&a.templates, "templates", "", "templates directory (empty uses the embedded templates)")

	root.AddCommand(newServeCmd(a), newBuildCmd(a), newCheckCmd(a))
	return root
}

func (a *app) init(ctx context.Context) error {
	opts := append([]config.Option{config.WithEnvFile(a.envFile)}, a.configOpts...)
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return err
	}
	if a.contentDir != "" {
		cfg.Site.ContentDir = a.contentDir
	}
	a.cfg = cfg
	if a.logger == nil {
		logger, err := observability.NewLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

func (a *app) contentFS() fs.FS {
	if a.cfg.Site.ContentDir != "" {
		return os.DirFS(a.cfg.Site.ContentDir)
	}
	return corpus.FS()
}

func (a *app) loadSite() (*content.Site, error) {
	site, err := content.Load(a.contentFS())
	if err != nil {
		return nil, err
	}
	a.logger.Info("content loaded",
		zap.Int("pages", len(site.Routes())),
		zap.String("version", site.Version()),
		zap.Bool("embedded", a.cfg.Site.ContentDir == ""),
	)
	return site, nil
}

func (a *app) renderer() (*render.Renderer, error) {
	fsys := fs.FS(templates.FS())
	if a.templates != "" {
		fsys = os.DirFS(a.templates)
	}
	r, err := render.New(fsys, render.WithReload(a.cfg.Site.Dev))
	if err != nil {
		return nil, err
	}
	for _, name := range []string{render.Page, render.NotFound} {
		if !r.Has(name) {
			return nil, fmt.Errorf("templates: missing page %q", name)
		}
	}
	return r, nil
}

func (a *app) assets() (fs.FS, error) {
	return public.AssetsFS()
}

func (a *app) builder() *handlers.Builder {
	return handlers.NewBuilder(a.cfg.Site.BaseURL, handlers.Analytics{
		GA4MeasurementID: a.cfg.Analytics.GA4MeasurementID,
		GTMContainerID:   a.cfg.Analytics.GTMContainerID,
	})
}
