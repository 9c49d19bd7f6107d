package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	flagOverviewOwner string
	flagOverviewKind  string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show an owner's base, research or team progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOwner(flagOverviewOwner); err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()
		ctx, cancel := commandContext()
		defer cancel()

		dashboard := services.NewDashboard(s.catalog,
			services.NewRosterRepository(s.gate),
			services.NewSettingsStore(s.gate, models.TableBuildingLevels),
			services.NewSettingsStore(s.gate, models.TableTeamSettings),
			services.NewSettingsStore(s.gate, models.TableResearchLevels),
		)

		switch flagOverviewKind {
		case "base":
			o, err := dashboard.BaseOverview(ctx, flagOverviewOwner)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return writeJSON(o)
			}
			renderBase(o)
		case "research":
			o, err := dashboard.ResearchOverview(ctx, flagOverviewOwner)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return writeJSON(o)
			}
			renderResearch(o)
		case "teams":
			o, err := dashboard.TeamOverview(ctx, flagOverviewOwner)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return writeJSON(o)
			}
			renderTeams(o)
		default:
			return fmt.Errorf("unknown overview %q, want base, research or teams", flagOverviewKind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&flagOverviewOwner, "owner", "", "Owner id (required)")
	overviewCmd.Flags().StringVar(&flagOverviewKind, "kind", "base", "Overview: base, research or teams")
}

func renderBase(o *services.BaseOverview) {
	fmt.Fprintf(os.Stderr, "HQ level %d, overall %.1f%%\n", o.HQ, o.Overall)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"BUILDING", "LEVEL", "PERCENT"})
	for _, b := range o.Buildings {
		table.Append([]string{b.Key, strconv.Itoa(b.Level), strconv.Itoa(b.Percent)})
	}
	table.Render()

	series := tablewriter.NewWriter(os.Stdout)
	series.SetHeader([]string{"SERIES", "MAX", "SUM", "PERCENT"})
	for _, sp := range o.Series {
		series.Append([]string{sp.Base, strconv.Itoa(sp.Max), strconv.Itoa(sp.Sum), strconv.Itoa(sp.Percent)})
	}
	series.Render()
}

func renderResearch(o *services.ResearchOverview) {
	fmt.Fprintf(os.Stderr, "overall %.1f%%\n", o.Overall)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"CATEGORY", "ITEM", "LEVEL", "MAX"})
	for _, cat := range o.Categories {
		for _, item := range cat.Items {
			table.Append([]string{cat.Category, item.Name, strconv.Itoa(item.Level), strconv.Itoa(item.Cap)})
		}
		table.Append([]string{cat.Category, "", "", fmt.Sprintf("%.1f%%", cat.Percent)})
	}
	table.Render()
}

func renderTeams(o *services.TeamOverview) {
	fmt.Fprintf(os.Stderr, "total power %.0f\n", o.TotalPower)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"TEAM", "TYPE", "POWER", "TOP"})
	for _, t := range o.Teams {
		var names []string
		for _, h := range t.Top {
			if h.Name != "" {
				names = append(names, h.Name)
			}
		}
		top := strings.Join(names, ", ")
		table.Append([]string{strconv.Itoa(t.Team), t.Type, strconv.FormatFloat(t.Power, 'f', 0, 64), top})
	}
	table.Render()
}
