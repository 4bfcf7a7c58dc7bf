package cmd

import (
	"fmt"
	"os"
	"strings"

	"helperkit/feature/csv"

	"github.com/spf13/cobra"
)

// csvCmd groups CSV utilities.
var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "CSV file utilities",
}

var csvHeadersCmd = &cobra.Command{
	Use:   "headers [path] [expected,comma,separated]",
	Short: "Verify a CSV file's header row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		want := strings.Split(args[1], ",")
		if err := csv.ExpectHeaders(f, want); err != nil {
			return err
		}

		fmt.Printf("headers match: %s\n", args[1])
		return nil
	},
}

var csvDateCmd = &cobra.Command{
	Use:   "date [value]",
	Short: "Show how a date cell would be parsed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := csv.ParseDate(args[0])
		if err != nil {
			return err
		}
		fmt.Println(parsed.Format("2006-01-02"))
		return nil
	},
}

func init() {
	csvCmd.AddCommand(csvHeadersCmd)
	csvCmd.AddCommand(csvDateCmd)
	RootCmd.AddCommand(csvCmd)
}
