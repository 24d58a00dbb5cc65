package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formvalidator/internal/converter"
	"formvalidator/internal/exporter"
	"formvalidator/internal/logger"
	"formvalidator/internal/model"
)

var (
	outPath string
	pretty  bool
	report  bool
	xlsxOut string
	preview bool
)

// convertCmd 转换工作簿
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a .xlsx or .csv template into the validation payload",
	Long: `Convert reads every worksheet of the file, normalizes its headers and
builds one record per data row. The output is a JSON object keyed by sheet
name, in workbook order.

Example:
  formvalidator convert samples.xlsx
  formvalidator convert samples.xlsx --out payload.json --pretty
  formvalidator convert organism.csv --report
  formvalidator convert samples.xlsx --xlsx report.xlsx --preview`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: stdout)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	convertCmd.Flags().BoolVar(&report, "report", false, "print per-sheet summary and warnings to stderr")
	convertCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write a report workbook (summary and warnings sheets)")
	convertCmd.Flags().BoolVar(&preview, "preview", false, "add one flattened record sheet per converted sheet to the --xlsx report")
}

func runConvert(cmd *cobra.Command, args []string) error {
	wb, err := converter.OpenFile(args[0])
	if err != nil {
		return err
	}

	coord := converter.NewCoordinator(appConfig.Classifier(), logger.Log)
	res, err := coord.Convert(context.Background(), wb, converter.Options{
		SkipSheets: appConfig.Convert.SkipSheets,
		Parallel:   appConfig.Convert.ParallelSheets,
	})
	if err != nil {
		return err
	}

	if report {
		writeReport(cmd.ErrOrStderr(), res)
	}
	if xlsxOut != "" {
		if err := writeReportWorkbook(res, xlsxOut); err != nil {
			return err
		}
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(res.Payload(), "", "  ")
	} else {
		data, err = json.Marshal(res.Payload())
	}
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0644)
}

// writeReportWorkbook 导出报告 Excel
func writeReportWorkbook(res *converter.Result, path string) error {
	f, err := exporter.Export(res, exporter.ExportOptions{
		Preview: preview,
		Progress: func(p exporter.ProgressEvent) {
			logger.Log.Debug("export progress", zap.Int("percent", p.Percent), zap.String("stage", p.Stage))
		},
	})
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	defer f.Close()
	return f.SaveAs(path)
}

// writeReport 输出每个 sheet 的转换摘要
func writeReport(w io.Writer, res *converter.Result) {
	fmt.Fprintf(w, "%s: %d sheets, %d converted, %d skipped, %d rows\n",
		res.Filename, res.TotalSheets, res.ConvertedSheets, res.SkippedSheets, res.TotalRows)
	for _, s := range res.Sheets {
		if s.Status == model.SheetSkipped {
			fmt.Fprintf(w, "  %-32s skipped (%s)\n", s.Name, s.Reason)
			continue
		}
		fmt.Fprintf(w, "  %-32s %-10s %d rows\n", s.Name, s.Kind, s.RowCount)
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "    ! column %d %q: %s\n", warn.Column+1, warn.Header, warn.Message)
		}
	}
}
