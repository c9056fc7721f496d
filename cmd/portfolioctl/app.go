package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sdianka/portfolio/internal/admin"
	"github.com/sdianka/portfolio/internal/client"
	"github.com/sdianka/portfolio/internal/tokenstore"
	"github.com/spf13/cobra"
)

// App holds what every command shares.
type App struct {
	apiBase string
	storage string
	yes     bool

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	api    *client.Client
	tokens *tokenstore.Store
}

func newApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{in: bufio.NewReader(in), out: out, errOut: errOut}
}

// connect builds the token store and the client from the global flags.
func (a *App) connect(cmd *cobra.Command, _ []string) error {
	path := a.storage
	if path == "" {
		var err error
		if path, err = tokenstore.DefaultPath(); err != nil {
			return err
		}
	}
	a.tokens = tokenstore.Open(path)

	api, err := client.New(a.apiBase, a.tokens)
	if err != nil {
		return err
	}
	a.api = api
	return nil
}

func (a *App) session() *admin.Session {
	return admin.NewSession(a.api, a.tokens, a, a)
}

// requireLogin fails early instead of letting the server answer 401.
func (a *App) requireLogin() error {
	if !a.session().LoggedIn() {
		return fmt.Errorf("not logged in, run %q first", "portfolioctl login")
	}
	return nil
}

func newRootCmd(app *App) *cobra.Command {
	apiBase := os.Getenv("PORTFOLIO_API_BASE")
	if apiBase == "" {
		apiBase = client.DefaultBaseURL
	}

	cmd := &cobra.Command{
		Use:               "portfolioctl",
		Short:             "Manage the portfolio site from the command line",
		SilenceUsage:      true,
		PersistentPreRunE: app.connect,
	}
	cmd.SetIn(app.in)
	cmd.SetOut(app.out)
	cmd.SetErr(app.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.apiBase, "api", apiBase, "API base URL (PORTFOLIO_API_BASE)")
	flags.StringVar(&app.storage, "storage", "", "token storage file (PORTFOLIO_STORAGE)")
	flags.BoolVarP(&app.yes, "yes", "y", false, "answer yes to confirmations")

	cmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newProjectsCmd(app),
		newServicesCmd(app),
		newMessagesCmd(app),
		newStatsCmd(app),
		newSiteCmd(app),
		newContactCmd(app),
	)
	return cmd
}
