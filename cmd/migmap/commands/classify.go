package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"migmap/internal/atlas"
	"migmap/internal/stats"
)

var (
	classifyYear    int
	classifyView    string
	classifyMode    string
	classifyRange   string
	classifyCountry string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the snapshot of one map state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := dataset.InitialState()
		if classifyYear != 0 {
			state = state.WithYear(classifyYear)
		}

		view, err := atlas.ParseView(classifyView)
		if err != nil {
			return err
		}
		state.View = view

		mode, err := atlas.ParseMode(classifyMode)
		if err != nil {
			return err
		}
		r, err := stats.ParseYearRange(classifyRange)
		if err != nil {
			return err
		}
		state = state.WithMode(mode).WithEvolutionRange(r)

		if classifyCountry != "" {
			c, err := dataset.Find(classifyCountry)
			if err != nil {
				return err
			}
			state = state.ToggleCountry(c.Code)
		}

		snap, err := dataset.Render(state)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

func init() {
	classifyCmd.Flags().IntVar(&classifyYear, "year", 0, "selected year (default: first year with records)")
	classifyCmd.Flags().StringVar(&classifyView, "view", "choropleth", "choropleth or anamorphic")
	classifyCmd.Flags().StringVar(&classifyMode, "mode", string(atlas.DefaultMode), "absolute, percentage or evolution")
	classifyCmd.Flags().StringVar(&classifyRange, "range", stats.FullRange.String(), "evolution range START-END")
	classifyCmd.Flags().StringVar(&classifyCountry, "country", "", "selected country (numeric or alpha-3 code)")
	rootCmd.AddCommand(classifyCmd)
}
