package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milburnr/fcs-site-sub010/internal/audit"
	"github.com/milburnr/fcs-site-sub010/internal/content"
	"github.com/milburnr/fcs-site-sub010/internal/seo"
)

// servedPaths are the non-page routes prose and templates may link to.
var servedPaths = []string{"/sitemap.xml", "/robots.txt"}

// errCheckFailed is returned after the report has been printed.
var errCheckFailed = errors.New("site check failed")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the content corpus and the rendered pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.check(cmd)
		},
	}
}

func (a *app) check(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	site, err := a.loadSite()
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			report(out, "load", verr.Strings())
			return errCheckFailed
		}
		return err
	}
	assets, err := a.assets()
	if err != nil {
		return err
	}

	var problems []string
	for _, issue := range content.Check(site, content.CheckOptions{
		Assets:      assets,
		ExtraRoutes: servedPaths,
		BaseURL:     a.cfg.Site.BaseURL,
	}) {
		problems = append(problems, issue.String())
	}
	report(out, "content", problems)
	failed := len(problems) > 0

	b := a.builder()
	problems = nil
	for _, route := range site.Routes() {
		docs, err := b.Documents(site, route)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := seo.Validate(doc); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", route, err))
			}
		}
	}
	report(out, "structured data", problems)
	failed = failed || len(problems) > 0

	r, err := a.renderer()
	if err != nil {
		return err
	}
	findings, err := audit.Site(cmd.Context(), site, r, b, audit.Options{Assets: assets, Extra: servedPaths})
	if err != nil {
		return err
	}
	problems = nil
	for _, f := range findings {
		problems = append(problems, f.String())
	}
	report(out, "rendered pages", problems)
	failed = failed || len(problems) > 0

	if failed {
		return errCheckFailed
	}
	fmt.Fprintf(out, "ok: %d pages checked\n", len(site.Routes()))
	return nil
}

func report(w io.Writer, stage string, problems []string) {
	if len(problems) == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %d problem(s)\n", stage, len(problems))
	for _, p := range problems {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
