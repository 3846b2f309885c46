package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"feedbacklens/adapters/tabular"
	"feedbacklens/app"
	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"
	"feedbacklens/internal/insight"
	"feedbacklens/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "feedbacklens-cli",
		Short: "Feedbacklens CLI for running insight queries against a feedback file",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newOverviewCmd(),
		newNegativeCmd(),
		newSamplesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type filterFlags struct {
	products []string
	from     string
	to       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.products, "products", nil, "restrict to these products")
	cmd.Flags().StringVar(&f.from, "from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "inclusive end date (YYYY-MM-DD)")
}

func (f *filterFlags) spec() (feedback.FilterSpec, error) {
	var filter feedback.FilterSpec
	filter.Products = f.products

	if f.from != "" {
		d, ok := core.ParseDate(f.from)
		if !ok {
			return filter, fmt.Errorf("unparseable --from date %q", f.from)
		}
		filter.DateFrom = &d
	}
	if f.to != "" {
		d, ok := core.ParseDate(f.to)
		if !ok {
			return filter, fmt.Errorf("unparseable --to date %q", f.to)
		}
		filter.DateTo = &d
	}
	return filter, filter.Validate()
}

// loadDataset builds an in-process service and loads either the given
// file or a named sample dataset.
func loadDataset(ctx context.Context, file, sample string) (*app.InsightService, core.DatasetID, error) {
	cfg := feedback.DefaultInsightConfig()
	svc := app.NewInsightService(insight.NewEngine(cfg), tabular.NewReader(), testkit.NewGenerator(), cfg)

	switch {
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		summary, err := svc.LoadUpload(ctx, f, file)
		if err != nil {
			return nil, "", err
		}
		return svc, summary.ID, nil
	case sample != "":
		summary, err := svc.LoadSample(ctx, sample)
		if err != nil {
			return nil, "", err
		}
		return svc, summary.ID, nil
	default:
		return nil, "", fmt.Errorf("either --file or --sample is required")
	}
}

func newReportCmd() *cobra.Command {
	var file, sample string
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a markdown insight report for a feedback file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.spec()
			if err != nil {
				return err
			}
			svc, id, err := loadDataset(cmd.Context(), file, sample)
			if err != nil {
				return err
			}
			md, err := svc.Report(cmd.Context(), id, filter)
			if err != nil {
				return err
			}
			fmt.Println(md)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a .csv or .xlsx feedback file")
	cmd.Flags().StringVar(&sample, "sample", "", "name of a built-in sample dataset")
	flags.register(cmd)
	return cmd
}

func newOverviewCmd() *cobra.Command {
	var file, sample string
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the combined query results as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.spec()
			if err != nil {
				return err
			}
			svc, id, err := loadDataset(cmd.Context(), file, sample)
			if err != nil {
				return err
			}
			ov, err := svc.Overview(cmd.Context(), id, filter)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(ov, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a .csv or .xlsx feedback file")
	cmd.Flags().StringVar(&sample, "sample", "", "name of a built-in sample dataset")
	flags.register(cmd)
	return cmd
}

func newNegativeCmd() *cobra.Command {
	var file, sample, sort, keyword string
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "negative",
		Short: "Export negative comments as CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.spec()
			if err != nil {
				return err
			}
			svc, id, err := loadDataset(cmd.Context(), file, sample)
			if err != nil {
				return err
			}
			opts := app.BrowseOptions{Sort: app.SortMostRecent, Keyword: keyword}
			switch app.NegativeSort(sort) {
			case app.SortLowestRating, app.SortLongestComment, app.SortHighestRating:
				opts.Sort = app.NegativeSort(sort)
			}
			data, err := svc.ExportNegativeCSV(cmd.Context(), id, filter, opts)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a .csv or .xlsx feedback file")
	cmd.Flags().StringVar(&sample, "sample", "", "name of a built-in sample dataset")
	cmd.Flags().StringVar(&sort, "sort", "most_recent", "most_recent | lowest_rating | longest_comment | highest_rating")
	cmd.Flags().StringVar(&keyword, "q", "", "case-insensitive text filter over review text")
	flags.register(cmd)
	return cmd
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := feedback.DefaultInsightConfig()
			svc := app.NewInsightService(insight.NewEngine(cfg), tabular.NewReader(), testkit.NewGenerator(), cfg)
			fmt.Println(strings.Join(svc.SampleNames(), "\n"))
			return nil
		},
	}
}
