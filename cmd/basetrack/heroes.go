package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/localnerve/basetrack/internal/services"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	flagHeroesOwner string
	flagHeroesOrder string
)

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "List an owner's hero roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOwner(flagHeroesOwner); err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()
		ctx, cancel := commandContext()
		defer cancel()

		heroes, err := services.NewRosterRepository(s.gate).ListForOwner(ctx, flagHeroesOwner, flagHeroesOrder)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "heroes: %d\n", len(heroes))
		if jsonOutput() {
			return writeJSON(heroes)
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"NAME", "TYPE", "ROLE", "LEVEL", "POWER", "STARS", "TEAM"})
		for _, h := range heroes {
			table.Append([]string{
				h.Name, h.Type, h.Role,
				strconv.Itoa(h.Level),
				strconv.FormatFloat(h.Power, 'f', -1, 64),
				h.Stars, h.Team,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(heroesCmd)
	heroesCmd.Flags().StringVar(&flagHeroesOwner, "owner", "", "Owner id (required)")
	heroesCmd.Flags().StringVar(&flagHeroesOrder, "order", services.OrderPower, "Order: power, level or name")
}
