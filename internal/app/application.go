package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tarekm/adsift/internal/cli"
	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/server"
)

// Application is the runtime state container: parsed CLI args, the shared
// logger and the API server. Pass Application into code that needs the
// global state rather than using package-level variables.
type Application struct {
	Args   *cli.CLIArgs
	Logger logging.Logger
	Server *server.Server

	httpSrv *http.Server

	// internal context for cancellation / lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication wires the server from parsed args. Ruleset problems surface
// here and are fatal by design.
func NewApplication(args *cli.CLIArgs, logger logging.Logger) (*Application, error) {
	if args == nil {
		return nil, errors.New("args are nil")
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("adsift")
	}

	srv, err := server.NewServer(server.Config{
		ListenAddr:     args.Listen,
		RulesPath:      args.Rules,
		DBPath:         args.DB,
		ClassifierSeed: args.Seed,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		Args:   args,
		Logger: logger,
		Server: srv,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start runs the HTTP server until it fails or Shutdown is called.
func (a *Application) Start() error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.httpSrv = a.Server.HTTPServer()
	a.Logger.Info("application starting", logging.Field{Key: "listen", Value: a.Args.Listen})
	err := a.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown attempts a graceful shutdown with a bounded timeout.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var err error
	if a.httpSrv != nil {
		err = a.httpSrv.Shutdown(shutdownCtx)
	}
	a.Server.Close()

	// cancel internal ctx to signal local components/tests
	a.cancel()

	return err
}
