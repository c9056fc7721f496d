package main

import (
	"fmt"
	"strings"

	"github.com/sdianka/portfolio/internal/admin"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage portfolio projects",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.connect(cmd, args); err != nil {
				return err
			}
			return app.requireLogin()
		},
	}
	cmd.AddCommand(
		newProjectsListCmd(app),
		newProjectsSaveCmd(app, false),
		newProjectsSaveCmd(app, true),
		newProjectsDeleteCmd(app),
	)
	return cmd
}

func (a *App) projects() *admin.ProjectsScreen {
	return admin.NewProjectsScreen(a.api, a, a)
}

func newProjectsListCmd(app *App) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered by title or technology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen := app.projects()
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			app.printProjects(screen.Filter(query))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	return cmd
}

func (a *App) printProjects(projects []models.Project) {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID, p.Title, strings.Join(p.TechStack, ", "), yesNo(p.Published), yesNo(p.Featured),
		})
	}
	a.table([]string{"ID", "Title", "Tech", "Published", "Featured"}, rows)
}

// projectFlags binds the form fields to flags.
func projectFlags(flags *pflag.FlagSet, form *admin.ProjectForm) {
	flags.StringVar(&form.Title, "title", form.Title, "project title")
	flags.StringVar(&form.Description, "description", form.Description, "description")
	flags.StringVar(&form.Technologies, "tech", form.Technologies, "comma separated technologies")
	flags.StringVar(&form.CoverURL, "cover", form.CoverURL, "cover image URL")
	flags.StringVar(&form.RepoURL, "repo", form.RepoURL, "repository URL")
	flags.StringVar(&form.LiveURL, "live", form.LiveURL, "live site URL")
	flags.BoolVar(&form.Published, "published", form.Published, "show on the public site")
	flags.BoolVar(&form.Featured, "featured", form.Featured, "highlight on the public site")
}

// newProjectsSaveCmd builds "create" or, with edit set, "update <id>".
// An update starts from the stored project and only overrides the flags
// that were given.
func newProjectsSaveCmd(app *App, edit bool) *cobra.Command {
	flagged := admin.NewProjectForm()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
	}
	if edit {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Update a project", cobra.ExactArgs(1)
	}
	projectFlags(cmd.Flags(), &flagged)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		screen := app.projects()
		if !edit {
			return screen.Save(cmd.Context(), "", flagged)
		}

		if err := screen.Load(cmd.Context()); err != nil {
			return err
		}
		current, ok := findProject(screen.Projects(), args[0])
		if !ok {
			return fmt.Errorf("project %s not found", args[0])
		}
		form := admin.ProjectFormFrom(current)
		merge(cmd.Flags(), map[string]func(){
			"title":       func() { form.Title = flagged.Title },
			"description": func() { form.Description = flagged.Description },
			"tech":        func() { form.Technologies = flagged.Technologies },
			"cover":       func() { form.CoverURL = flagged.CoverURL },
			"repo":        func() { form.RepoURL = flagged.RepoURL },
			"live":        func() { form.LiveURL = flagged.LiveURL },
			"published":   func() { form.Published = flagged.Published },
			"featured":    func() { form.Featured = flagged.Featured },
		})
		return screen.Save(cmd.Context(), current.ID, form)
	}
	return cmd
}

// merge runs the setter of every flag the user actually passed.
func merge(flags *pflag.FlagSet, setters map[string]func()) {
	flags.Visit(func(f *pflag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})
}

func findProject(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id || p.Slug == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.cancelled(app.projects().Delete(cmd.Context(), args[0]))
		},
	}
}
