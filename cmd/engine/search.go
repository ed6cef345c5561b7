package main

import (
	"encoding/json"
	"fmt"
	"os"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search job boards (and optionally company pages) and print ranked postings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = e.log.Sync() }()

		req, err := searchRequestFromFlags(cmd, args)
		if err != nil {
			return err
		}

		res, err := e.service().Search(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := res.Err(); err != nil {
			e.log.Warn("search returned nothing", zap.Error(err))
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringSliceP("term", "t", nil, "search term (repeatable; positional args are terms too)")
	f.StringP("location", "l", "", "location, e.g. \"New York, NY\"")
	f.StringSliceP("site", "s", nil, "job board: linkedin, indeed, glassdoor, google, ziprecruiter (default from config)")
	f.Int("results", 0, "results wanted per term and site, 1..100 (default from config)")
	f.Int("distance", 0, "search radius in miles (default from config)")
	f.String("job-type", "", "internship or fulltime")
	f.Bool("remote", false, "remote postings only")
	f.Int("hours-old", 0, "only postings newer than this many hours")
	f.Bool("expand", false, "expand terms with related titles before searching")
	f.Float64("threshold", 0, "minimum relevance score in [0,1] (default from config)")
	f.Bool("companies", false, "also scrape the configured company career pages")
	f.StringSlice("category", nil, "restrict company pages to these categories")
	f.StringSlice("experience", nil, "experience buckets: internship, 1-3, 3-5, 5-7, 7+")
	f.String("resume", "", "JSON file with a parsed résumé profile to rank postings against")
}

func searchRequestFromFlags(cmd *cobra.Command, args []string) (search.Request, error) {
	f := cmd.Flags()
	var req search.Request

	terms, _ := f.GetStringSlice("term")
	req.Terms = append(terms, args...)
	req.Location, _ = f.GetString("location")
	req.Sites, _ = f.GetStringSlice("site")
	req.ResultsWanted, _ = f.GetInt("results")
	req.JobType, _ = f.GetString("job-type")
	req.IsRemote, _ = f.GetBool("remote")
	req.Expand, _ = f.GetBool("expand")
	req.IncludeCompanies, _ = f.GetBool("companies")
	req.Categories, _ = f.GetStringSlice("category")
	req.ExperienceLevels, _ = f.GetStringSlice("experience")

	if f.Changed("distance") {
		d, _ := f.GetInt("distance")
		req.Distance = &d
	}
	if f.Changed("hours-old") {
		h, _ := f.GetInt("hours-old")
		req.HoursOld = &h
	}
	if f.Changed("threshold") {
		t, _ := f.GetFloat64("threshold")
		req.Threshold = &t
	}

	if path, _ := f.GetString("resume"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return req, fmt.Errorf("read resume: %w", err)
		}
		var r domain.ResumeProfile
		if err := json.Unmarshal(b, &r); err != nil {
			return req, fmt.Errorf("parse resume %s: %w", path, err)
		}
		req.Resume = &r
	}
	return req, nil
}
