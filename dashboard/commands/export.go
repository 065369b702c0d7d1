package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bikeshare/export"
)

const defaultExportPath = "tables.xlsx"

// NewExportCommand writes the precomputed tables to a workbook
func NewExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the usage tables to an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSession(GetConfig(cmd.Context()))
			if err != nil {
				return err
			}

			if err := export.WriteWorkbook(outPath, s.Tables()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tables written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", defaultExportPath, "output workbook")
	return cmd
}
