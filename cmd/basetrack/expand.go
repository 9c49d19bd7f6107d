package main

import (
	"os"

	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/progress"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [name...]",
	Short: "Expand range notation such as \"Barracks 1-4\"",
	Long:  "Expand range notation. Without arguments the catalog building list is expanded.",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			c, err := catalog.Default()
			if err != nil {
				return err
			}
			names = c.Buildings
		}

		keys := progress.ExpandRange(names...)
		if jsonOutput() {
			if keys == nil {
				keys = []string{}
			}
			return writeJSON(keys)
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"KEY"})
		for _, k := range keys {
			table.Append([]string{k})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
