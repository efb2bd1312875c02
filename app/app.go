// Package app wires the service together: database, mailer, calendar,
// bucket and the http api.
package app

import (
	"context"

	"log/slog"

	"github.com/hidecraft/hidecraft-manager/config"
	httpapi "github.com/hidecraft/hidecraft-manager/internal/api/http"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/admin"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/frontend"
	"github.com/hidecraft/hidecraft-manager/internal/bucket"
	"github.com/hidecraft/hidecraft-manager/internal/calendar"
	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/mail"
	google "github.com/hidecraft/hidecraft-manager/internal/oauth/google"
	"github.com/hidecraft/hidecraft-manager/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting hidecraft manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	mailer, err := mail.New(&a.c.Mailer, mail.NewSender(&a.c.Mailer))
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create mailer",
			slog.String("err", err.Error()),
		)
		return err
	}

	scheduler, err := calendar.New(ctx, &a.c.Calendar)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create calendar scheduler",
			slog.String("err", err.Error()),
		)
		return err
	}

	fileStore, err := a.c.Bucket.Init()
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't init s3 bucket",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(&a.c.Auth, a.db.Admin(), a.db.Users(), google.New(&a.c.OAuth))
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	adminS := admin.New(a.db, mailer, fileStore)
	frontendS := frontend.New(a.db, mailer, scheduler)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, adminS, frontendS, authS); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
