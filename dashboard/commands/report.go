package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bikeshare/aggregator"
	"bikeshare/export"
	"bikeshare/filter"
	"bikeshare/queryhandlers/factory"
	"bikeshare/session"
)

// NewReportCommand prints the precomputed tables, or a single view over the filtered trips
func NewReportCommand() *cobra.Command {
	var (
		tableName string
		viewName  string
		params    filter.SelectionParams
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the usage tables of the dataset",
		Long: `Print the precomputed usage tables of the whole dataset. With --view the given view
is computed over the trips that match the filters and printed as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			s, err := loadSession(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if viewName != "" {
				selection, err := filter.NewSelection(params)
				if err != nil {
					return err
				}
				data, err := factory.GenerateView(viewName, cfg.Views, s.Filtered(selection))
				if err != nil {
					return err
				}
				return writeJSON(out, data)
			}

			writeSessionSummary(out, s.Info())
			return writeTables(out, s.Tables(), tableName)
		},
	}

	cmd.Flags().StringVar(&tableName, "table", "", "print only this table")
	cmd.Flags().StringVar(&viewName, "view", "", "print this view as JSON instead of the tables")
	cmd.Flags().StringVar(&params.From, "from", "", "first date of the view, YYYY-MM-DD")
	cmd.Flags().StringVar(&params.To, "to", "", "last date of the view, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&params.UserTypes, "user-type", nil, "user types of the view")
	cmd.Flags().StringSliceVar(&params.BikeTypes, "bike-type", nil, "bike types of the view")
	cmd.Flags().StringSliceVar(&params.TimesOfDay, "time-of-day", nil, "times of day of the view, e.g. morning")

	return cmd
}

func writeSessionSummary(w io.Writer, info session.Info) {
	_, _ = fmt.Fprintf(w, "Source: %s\n", info.Source)
	if !info.Available {
		_, _ = fmt.Fprintln(w, "Dataset not available")
	}
	_, _ = fmt.Fprintf(w, "Trips: %s loaded, %s cleaned, %s dropped\n\n",
		export.FormatCount(info.RawCount), export.FormatCount(info.CleanedCount), export.FormatCount(info.DroppedCount))
}

func writeTables(w io.Writer, tables *aggregator.Tables, tableName string) error {
	names := aggregator.TableNames()
	if tableName != "" {
		name, err := aggregator.ParseTableName(tableName)
		if err != nil {
			return err
		}
		names = []aggregator.TableName{name}
	}

	for _, name := range names {
		if err := export.RenderTable(w, tables, name); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
