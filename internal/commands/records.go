package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sheetimport/internal/core"
)

// errInvalidFile makes validate exit non-zero when the report has errors.
var errInvalidFile = errors.New("file has validation errors")

func newValidateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.xlsx>",
		Short: "Check a workbook without importing it",
		Long: "Parses the first sheet, checks every row and reports schema problems\n" +
			"and duplicate standardid values as JSON. Nothing is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			svc, err := rt.service(cmd.Context())
			if err != nil {
				return err
			}

			report, err := svc.Validate(cmd.Context(), data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}

			if !report.Valid {
				return fmt.Errorf("%w: %d row(s)", errInvalidFile, len(report.Errors))
			}
			return nil
		},
	}
}

func newImportCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import every acceptable row of a workbook",
		Long: "Rows that fail validation or whose standardid already exists are\n" +
			"rejected; the rest are stored together. Run validate for row detail.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			svc, err := rt.service(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Import(cmd.Context(), data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d row(s), rejected %d row(s)\n", result.Imported, result.Rejected)
			return nil
		},
	}
}

func newExportCommand(rt *runtime) *cobra.Command {
	var (
		columns []string
		start   string
		end     string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records to a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := core.ParseDateRange(start, end)
			if err != nil {
				return err
			}

			svc, err := rt.service(cmd.Context())
			if err != nil {
				return err
			}

			data, err := svc.Export(cmd.Context(), core.ExportRequest{Columns: columns, Range: dateRange})
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", core.RecordColumns, "columns to export, in order")
	cmd.Flags().StringVar(&start, "start", "", "earliest tanggal to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "latest tanggal to include (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "exported_data.xlsx", "output file")

	return cmd
}
