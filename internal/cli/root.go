package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/dataset"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
)

const defaultDataPath = "data/candy-data.csv"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	dataPath string
	debug    bool
}

// NewRootCmd builds the candyctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "candyctl",
		Short:         "Browse, filter and compare candies from the terminal",
		Long:          `candyctl runs the candy dashboard engine against a local CSV and prints the results as tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultPath := defaultDataPath
	if v := os.Getenv("CANDY_DATASET_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVar(&opts.dataPath, "data", defaultPath, "path to candy CSV")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	root.AddCommand(newTopCmd(opts), newFilterCmd(opts), newAnalyzeCmd(opts))
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) load(cmd *cobra.Command) (*candy.Dataset, error) {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return dataset.NewLoader(dataset.CSVSource{Path: o.dataPath}, logger).Load(cmd.Context())
}

// criteriaFlags binds the filter flags used by filter and analyze.
type criteriaFlags struct {
	flags    []string
	sugarMin float64
	sugarMax float64
	priceMin float64
	priceMax float64
}

func (c *criteriaFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&c.flags, "flags", nil, "required categories, e.g. chocolate,caramel")
	f.Float64Var(&c.sugarMin, "sugar-min", engine.FullRange.Low, "lowest sugar percentile (0-100)")
	f.Float64Var(&c.sugarMax, "sugar-max", engine.FullRange.High, "highest sugar percentile (0-100)")
	f.Float64Var(&c.priceMin, "price-min", engine.FullRange.Low, "lowest price percentile (0-100)")
	f.Float64Var(&c.priceMax, "price-max", engine.FullRange.High, "highest price percentile (0-100)")
}

func (c *criteriaFlags) criteria() (engine.Criteria, error) {
	out := engine.DefaultCriteria()
	for _, s := range c.flags {
		f, err := candy.ParseFlag(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return engine.Criteria{}, err
		}
		out.Required = append(out.Required, f)
	}
	for _, v := range []float64{c.sugarMin, c.sugarMax, c.priceMin, c.priceMax} {
		if v < 0 || v > 100 {
			return engine.Criteria{}, fmt.Errorf("percentile bounds must be within 0-100, got %g", v)
		}
	}
	out.Sugar = engine.Range{Low: c.sugarMin, High: c.sugarMax}
	out.Price = engine.Range{Low: c.priceMin, High: c.priceMax}
	return out, nil
}
