// Package cli implements the interactive terminal client: a small REPL over
// the HTTP API with a file-backed session.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/config"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
)

type App struct {
	config  *config.Config
	client  *api.Client
	store   *session.Store
	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	store := session.NewStore(c.SessionFile)
	s, err := store.Load()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(c.ServerEndpointAddr)
	client.SetToken(s.Token)

	return &App{
		config:  c,
		client:  client,
		store:   store,
		session: s,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// setSession installs the new login state and persists it. A save failure
// does not undo the login; the session just will not survive this run.
func (a *App) setSession(s *session.Session) error {
	a.session = s
	a.client.SetToken(s.Token)
	return a.store.Save(s)
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.session.Email
	}
	return "not logged in"
}
