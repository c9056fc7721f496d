package main

import (
	"fmt"
	"strings"

	"github.com/sdianka/portfolio/internal/admin"
	"github.com/sdianka/portfolio/internal/site"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard numbers",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return app.requireLogin()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := admin.NewDashboardScreen(app.api, app).Load(cmd.Context())
			if err != nil {
				return err
			}
			app.table([]string{"", "Total", "Detail"}, [][]string{
				{"Projects", fmt.Sprint(stats.Projects.Total),
					fmt.Sprintf("%d published, %d featured", stats.Projects.Published, stats.Projects.Featured)},
				{"Services", fmt.Sprint(stats.Services.Total), fmt.Sprintf("%d active", stats.Services.Active)},
				{"Messages", fmt.Sprint(stats.Messages.Total),
					fmt.Sprintf("%d unread, %d this week", stats.Messages.Unread, stats.Messages.ThisWeek)},
			})

			if len(stats.TechDistribution) > 0 {
				rows := make([][]string, 0, len(stats.TechDistribution))
				for _, tc := range stats.TechDistribution {
					rows = append(rows, []string{tc.Name, fmt.Sprint(tc.Count), fmt.Sprintf("%.1f%%", tc.Percent)})
				}
				app.table([]string{"Technology", "Projects", "Share"}, rows)
			}
			if sys := stats.System; sys != nil {
				fmt.Fprintf(app.out, "Host: CPU %.1f%%, memory %.1f%%\n", sys.CPUPercent, sys.MemoryPercent)
			}
			return nil
		},
	}
}

func newSiteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Show what visitors see",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "projects",
			Short: "Published projects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				projects, err := site.PublicProjects(cmd.Context(), app.api)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, []string{p.Title, strings.Join(p.TechStack, ", "), p.LiveURL})
				}
				app.table([]string{"Title", "Tech", "Live"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "services",
			Short: "Active services in display order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				services, err := site.PublicServices(cmd.Context(), app.api)
				if err != nil {
					return err
				}
				app.printServices(services, services, false)
				return nil
			},
		},
	)
	return cmd
}

func newContactCmd(app *App) *cobra.Command {
	var form site.ContactForm
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the public contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return form.Submit(cmd.Context(), app.api, app)
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "your name")
	cmd.Flags().StringVar(&form.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&form.Subject, "subject", "", "subject")
	cmd.Flags().StringVarP(&form.Message, "message", "m", "", "message text")
	return cmd
}
