package main

import (
	"fmt"

	"github.com/sdianka/portfolio/internal/admin"
	"github.com/sdianka/portfolio/internal/models"
	"github.com/spf13/cobra"
)

func newMessagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"inbox"},
		Short:   "Read and triage contact messages",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.connect(cmd, args); err != nil {
				return err
			}
			return app.requireLogin()
		},
	}
	cmd.AddCommand(
		newMessagesListCmd(app),
		newMessagesShowCmd(app),
		newMessagesReadCmd(app),
		newMessagesDeleteCmd(app),
	)
	return cmd
}

func (a *App) loadedInbox(cmd *cobra.Command) (*admin.MessagesScreen, error) {
	screen := admin.NewMessagesScreen(a.api, a, a)
	if err := screen.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return screen, nil
}

func findMessage(messages []models.Message, id string) (models.Message, bool) {
	for _, m := range messages {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

func newMessagesListCmd(app *App) *cobra.Command {
	var query, filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := app.loadedInbox(cmd)
			if err != nil {
				return err
			}
			messages := screen.Filter(query, admin.ParseReadFilter(filter))
			rows := make([][]string, 0, len(messages))
			for _, m := range messages {
				state := "new"
				if m.Read {
					state = ""
				}
				rows = append(rows, []string{
					m.ID, state, m.CreatedAt.Local().Format("2006-01-02 15:04"),
					m.Name, m.Email, truncate(m.Message, 50),
				})
			}
			app.table([]string{"ID", "", "Received", "Name", "Email", "Message"}, rows)
			fmt.Fprintf(app.out, "%d unread\n", screen.UnreadCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name, email and message")
	cmd.Flags().StringVar(&filter, "filter", string(admin.FilterAll), "all, unread or read")
	return cmd
}

func newMessagesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a message in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := app.loadedInbox(cmd)
			if err != nil {
				return err
			}
			m, ok := findMessage(screen.Messages(), args[0])
			if !ok {
				return fmt.Errorf("message %s not found", args[0])
			}
			fmt.Fprintf(app.out, "From:    %s <%s>\n", m.Name, m.Email)
			if m.Subject != "" {
				fmt.Fprintf(app.out, "Subject: %s\n", m.Subject)
			}
			fmt.Fprintf(app.out, "Date:    %s\n\n%s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Message)
			return nil
		},
	}
}

func newMessagesReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-read <id>",
		Short: "Mark a message as read, or back to unread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := app.loadedInbox(cmd)
			if err != nil {
				return err
			}
			m, ok := findMessage(screen.Messages(), args[0])
			if !ok {
				return fmt.Errorf("message %s not found", args[0])
			}
			return screen.ToggleRead(cmd.Context(), m.ID, m.Read)
		},
	}
}

func newMessagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen := admin.NewMessagesScreen(app.api, app, app)
			return app.cancelled(screen.Delete(cmd.Context(), args[0]))
		},
	}
}
