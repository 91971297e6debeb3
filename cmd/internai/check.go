package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
)

var checkQuery struct {
	keyword  string
	location string
	state    string
	page     int
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one live search, print the results, exit",
	Long:  "One-shot live search through the configured upstream and cache. Nothing is written to the store.",
	RunE:  runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVarP(&checkQuery.keyword, "keyword", "k", "", "search keyword (default: internship)")
	f.StringVarP(&checkQuery.location, "location", "l", "", "location passed to the upstream")
	f.StringVarP(&checkQuery.state, "state", "s", "", "only show postings in this Indian state (remote always matches)")
	f.IntVarP(&checkQuery.page, "page", "p", 1, "result page")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}
	if checkQuery.page < 1 {
		return fmt.Errorf("%w: page must be a positive integer", model.ErrInvalidInput)
	}
	if checkQuery.state != "" && !filter.ValidState(checkQuery.state) {
		return fmt.Errorf("%w: unknown state %q", model.ErrInvalidInput, checkQuery.state)
	}

	logger.Info("check mode: upstream failures are reported, not served from the local store")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, _, closeCache, err := setupSearch(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := svc.LiveJobs(ctx, model.SearchQuery{
		Keyword:  checkQuery.keyword,
		Location: checkQuery.location,
		Page:     checkQuery.page,
	})
	if err != nil {
		logger.Error("live search failed", "error", err)
		return err
	}
	jobs := filter.Apply(filter.NewRegionFilter(checkQuery.state), res.Jobs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tLOCATION\tMODE\tSKILLS")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", j.Title, j.Company, j.Location, j.WorkMode, strings.Join(j.RequiredSkills, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Info("check complete", "source", res.Source, "cached", res.Cached, "fetched", len(res.Jobs), "shown", len(jobs))
	return nil
}
