package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var quoteFields []string

var quoteCmd = &cobra.Command{
	Use:   "quote CODES",
	Short: "Extract quote records for comma-separated instrument codes",
	Long:  "Runs the extraction cascade for each code (e.g. \"7203.T,^DJI,USDJPY=X\") concurrently and prints one result per code. A failing code never fails the batch.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := splitCodes(args[0])
		if len(codes) == 0 {
			return eris.New("no instrument codes given")
		}
		fields, err := parseFields(quoteFields)
		if err != nil {
			return err
		}

		svc, err := initService()
		if err != nil {
			return err
		}

		results := svc.ExtractAll(cmd.Context(), codes, fields)
		return printJSON(results)
	},
}

func init() {
	quoteCmd.Flags().StringSliceVar(&quoteFields, "fields", nil,
		"restrict output to these fields (default: all)")
	rootCmd.AddCommand(quoteCmd)
}
