package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"formvalidator/internal/converter"
	"formvalidator/internal/parser"
)

// headersCmd 查看列头规范化结果
var headersCmd = &cobra.Command{
	Use:   "headers <file>",
	Short: "Show raw and normalized headers of every sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := converter.OpenFile(args[0])
		if err != nil {
			return err
		}

		classifier := appConfig.Classifier()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, sheet := range wb.Sheets {
			kind := classifier.Classify(sheet.Name).Kind()
			fmt.Fprintf(tw, "[%s] (%s)\n", sheet.Name, kind)
			for i, h := range parser.NormalizeHeaders(sheet.Headers) {
				fmt.Fprintf(tw, "  %d\t%s\t%s\n", i+1, sheet.Headers[i], h)
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(headersCmd)
}
