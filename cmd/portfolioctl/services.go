package main

import (
	"fmt"

	"github.com/sdianka/portfolio/internal/admin"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/spf13/cobra"
)

func newServicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage the services offered on the site",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.connect(cmd, args); err != nil {
				return err
			}
			return app.requireLogin()
		},
	}
	cmd.AddCommand(
		newServicesListCmd(app),
		newServicesSaveCmd(app, false),
		newServicesSaveCmd(app, true),
		newServicesToggleCmd(app),
		newServicesReorderCmd(app),
		newServicesDeleteCmd(app),
	)
	return cmd
}

// loadedServices returns a services screen with the list already loaded.
func (a *App) loadedServices(cmd *cobra.Command) (*admin.ServicesScreen, error) {
	screen := admin.NewServicesScreen(a.api, a, a)
	if err := screen.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return screen, nil
}

func findService(services []models.Service, id string) (models.Service, bool) {
	for _, s := range services {
		if s.ID == id || s.Slug == id {
			return s, true
		}
	}
	return models.Service{}, false
}

func newServicesListCmd(app *App) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := app.loadedServices(cmd)
			if err != nil {
				return err
			}
			app.printServices(screen.Filter(query), screen.Services(), true)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	return cmd
}

// printServices prints shown with the "#" column numbered by position in
// all, the list that "services move" works on.
func (a *App) printServices(shown, all []models.Service, withState bool) {
	positions := make(map[string]int, len(all))
	for i, s := range all {
		positions[s.ID] = i + 1
	}

	header := []string{"#", "ID", "Icon", "Title", "Price"}
	if withState {
		header = append(header, "Active", "Featured")
	}
	rows := make([][]string, 0, len(shown))
	for _, s := range shown {
		price := "-"
		if s.Price != nil {
			price = *s.Price
		}
		row := []string{fmt.Sprint(positions[s.ID]), s.ID, s.Icon, s.Title, price}
		if withState {
			row = append(row, yesNo(s.Active), yesNo(s.Featured))
		}
		rows = append(rows, row)
	}
	a.table(header, rows)
}

// newServicesSaveCmd builds "create" or, with edit set, "update <id>".
func newServicesSaveCmd(app *App, edit bool) *cobra.Command {
	flagged := admin.NewServiceForm()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a service, appended after the existing ones",
		Args:  cobra.NoArgs,
	}
	if edit {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Update a service, keeping its position", cobra.ExactArgs(1)
	}
	flags := cmd.Flags()
	flags.StringVar(&flagged.Title, "title", "", "service title")
	flags.StringVar(&flagged.Description, "description", "", "description")
	flags.StringVar(&flagged.Icon, "icon", flagged.Icon, "emoji or icon name")
	flags.StringVar(&flagged.Price, "price", "", `price label such as "From 500€", empty to hide`)
	flags.BoolVar(&flagged.Featured, "featured", false, "highlight on the public site")
	flags.BoolVar(&flagged.Active, "active", flagged.Active, "show on the public site")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		screen, err := app.loadedServices(cmd)
		if err != nil {
			return err
		}
		if !edit {
			return screen.Save(cmd.Context(), nil, flagged)
		}

		current, ok := findService(screen.Services(), args[0])
		if !ok {
			return fmt.Errorf("service %s not found", args[0])
		}
		form := admin.ServiceFormFrom(current)
		merge(cmd.Flags(), map[string]func(){
			"title":       func() { form.Title = flagged.Title },
			"description": func() { form.Description = flagged.Description },
			"icon":        func() { form.Icon = flagged.Icon },
			"price":       func() { form.Price = flagged.Price },
			"featured":    func() { form.Featured = flagged.Featured },
			"active":      func() { form.Active = flagged.Active },
		})
		return screen.Save(cmd.Context(), &current, form)
	}
	return cmd
}

func newServicesToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Show or hide a service on the public site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := app.loadedServices(cmd)
			if err != nil {
				return err
			}
			current, ok := findService(screen.Services(), args[0])
			if !ok {
				return fmt.Errorf("service %s not found", args[0])
			}
			return screen.ToggleActive(cmd.Context(), current.ID, current.Active)
		},
	}
}

func newServicesReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a service to another position (positions as shown by list)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := position(args[0])
			if err != nil {
				return err
			}
			to, err := position(args[1])
			if err != nil {
				return err
			}
			screen, err := app.loadedServices(cmd)
			if err != nil {
				return err
			}
			if n := len(screen.Services()); from >= n || to >= n {
				return fmt.Errorf("positions must be between 1 and %d", n)
			}
			if err := screen.Reorder(cmd.Context(), from, to); err != nil {
				return err
			}
			app.printServices(screen.Services(), screen.Services(), true)
			return nil
		},
	}
}

func newServicesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := app.loadedServices(cmd)
			if err != nil {
				return err
			}
			current, ok := findService(screen.Services(), args[0])
			if !ok {
				return fmt.Errorf("service %s not found", args[0])
			}
			return app.cancelled(screen.Delete(cmd.Context(), current.ID))
		},
	}
}
