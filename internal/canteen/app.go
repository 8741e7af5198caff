// Package canteen wires the gateway client, session, and review loader into
// the application object shared by all commands.
package canteen

import (
	"errors"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/config"
	"github.com/colonyops/canteen/internal/core/session"
	"github.com/colonyops/canteen/internal/review"
)

// ErrNotLoggedIn is returned by RequireLogin when no session exists.
var ErrNotLoggedIn = errors.New("not logged in, run 'canteen login' first")

// App aggregates the services commands operate on. It is populated once in
// the CLI Before hook; commands hold a pointer to it.
type App struct {
	Config  *config.Config
	Session session.Session
	Client  *client.Client
	Reviews *review.Loader
	Version string
}

// NewApp creates the application object.
func NewApp(cfg *config.Config, sess session.Session, gw *client.Client) *App {
	return &App{
		Config:  cfg,
		Session: sess,
		Client:  gw,
		Reviews: review.NewLoader(gw),
	}
}

// RequireLogin returns the session or ErrNotLoggedIn.
func (a *App) RequireLogin() (session.Session, error) {
	if !a.Session.LoggedIn() {
		return session.Session{}, ErrNotLoggedIn
	}
	return a.Session, nil
}
