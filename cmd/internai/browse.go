package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/internai/internai/internal/browse"
	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/search"
)

var browseOpts struct {
	skills   string
	state    string
	location string
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse live listings interactively (TUI)",
	Long:  "Shows the role picker, then a split-pane view of live postings with your region on the right.",
	RunE:  runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseOpts.skills, "skills", "", "comma-separated skills used for eligibility checks")
	f.StringVarP(&browseOpts.state, "state", "s", "", "Indian state shown in the right pane")
	f.StringVarP(&browseOpts.location, "location", "l", "", "location passed to the upstream search")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// A TUI owns the terminal: log output before the alt-screen starts
	// corrupts the display.
	logger := silentLogger()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if browseOpts.state != "" && !filter.ValidState(browseOpts.state) {
		return fmt.Errorf("%w: unknown state %q", model.ErrInvalidInput, browseOpts.state)
	}

	ctx := context.Background()
	var local search.LocalSearcher
	if st, err := openStore(ctx, cfg); err == nil {
		defer st.Close()
		local = st
	}

	svc, _, closeCache, err := setupSearch(ctx, cfg, local, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := browse.Options{
		Searcher:  svc,
		Evaluator: setupAdvisor(cfg, logger),
		Skills:    filter.ParseSkills(browseOpts.skills),
		Region:    browseOpts.state,
		Location:  browseOpts.location,
	}
	if len(opts.Skills) == 0 {
		opts.Evaluator = nil
	}

	roles := append([]string{browse.AnyRole}, catalog.Roles()...)
	for {
		idx, err := browse.RunRolePicker(roles)
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}

		keyword := search.DefaultKeyword
		if idx > 0 {
			keyword = roles[idx]
		}
		q := model.SearchQuery{Keyword: keyword, Location: browseOpts.location, Page: 1}
		res, err := browse.RunLoader(keyword, func(ctx context.Context) (search.Result, error) {
			return svc.LiveJobs(ctx, q)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			continue
		}

		wantQuit, err := browse.Run(res, keyword, opts)
		if err != nil {
			return err
		}
		if wantQuit {
			return nil
		}
	}
}
