package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/config"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
	"github.com/MikeSquared-Agency/Candyboard/internal/narrative"
)

func newTopCmd(opts *rootOptions) *cobra.Command {
	var names []string
	var why bool

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the recommended candies and how they compare to the rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			picks, err := engine.ResolveSelection(ds.Records(), names)
			if err != nil {
				return err
			}
			cmp, err := engine.Compare(picks, ds, engine.AllFields...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderCandies(out, picks)
			fmt.Fprintln(out)
			renderComparison(out, cmp, "Recommended")
			if why {
				for _, p := range picks {
					if r := narrative.Rationale(p.Name); r != "" {
						fmt.Fprintf(out, "\n%s\n  %s\n", p.Name, r)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&names, "names", config.DefaultRecommendations, "candies to recommend (at most 3)")
	cmd.Flags().BoolVar(&why, "why", false, "print why each candy is recommended")
	return cmd
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var cf criteriaFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List candies matching categories and sugar/price percentile ranges",
		Example: `  candyctl filter --flags chocolate,caramel
  candyctl filter --sugar-min 20 --sugar-max 60 --price-max 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.criteria()
			if err != nil {
				return err
			}
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}

			subset := engine.Filter(ds, c)
			out := cmd.OutOrStdout()
			if len(subset) == 0 {
				fmt.Fprintln(out, "(no candies match)")
				return nil
			}
			renderCandies(out, subset)
			fmt.Fprintf(out, "%d of %d candies match\n", len(subset), ds.Len())
			return nil
		},
	}
	cf.bind(cmd)
	return cmd
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var cf criteriaFlags

	cmd := &cobra.Command{
		Use:   "analyze NAME...",
		Short: "Compare up to three candies against the dataset averages",
		Example: `  candyctl analyze Twix Snickers
  candyctl analyze --flags fruity Starburst "Skittles original"`,
		Args: cobra.RangeArgs(1, candy.MaxSelection),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.criteria()
			if err != nil {
				return err
			}
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}

			selected, err := engine.ResolveSelection(engine.Filter(ds, c), args)
			if err != nil {
				return err
			}
			a, err := engine.Assess(selected, ds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderCandies(out, selected)
			fmt.Fprintln(out)
			renderComparison(out, a.Comparison, "Selection")
			fmt.Fprintln(out)
			for _, in := range narrative.Describe(a.Insights) {
				fmt.Fprintf(out, "- %s\n", in.Text)
			}
			return nil
		},
	}
	cf.bind(cmd)
	return cmd
}
