package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-playground/form/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mabego/admingate/internal/config"
	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/internal/logger"
	"github.com/mabego/admingate/internal/migrations"
	"github.com/mabego/admingate/internal/models"
	"github.com/mabego/admingate/internal/tokens"
)

const (
	IdleTimeout     = time.Minute
	ReadTimeout     = 5 * time.Second
	SessionLifetime = 12 * time.Hour
	ShutdownTimeout = 10 * time.Second
	WriteTimeout    = 10 * time.Second
)

type application struct {
	debug          bool
	secureCookies  bool
	logger         zerolog.Logger
	admins         models.AdminModelInterface
	tokens         *tokens.Minter
	templateCache  map[string]*template.Template
	formDecoder    *form.Decoder
	sessionManager *scs.SessionManager
	clock          clockwork.Clock
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zlog := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, zlog zerolog.Logger) error {
	templateCache, err := newTemplateCache()
	if err != nil {
		return err
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = SessionLifetime
	sessionManager.Cookie.Name = "site_session"
	sessionManager.Cookie.Secure = cfg.Cookies.Secure
	sessionManager.Store = memstore.New()

	if cfg.DSN != "" {
		db, err := openDB(cfg.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Up(db); err != nil {
			return err
		}

		sessionManager.Store = mysqlstore.New(db)
		zlog.Info().Msg("using MySQL session store")
	}

	if cfg.AdminPasswordHash == "" {
		zlog.Warn().Msg("no admin password hash configured, sign in is disabled")
	}
	if cfg.Cookies.HashKey == nil || cfg.Cookies.BlockKey == nil {
		zlog.Warn().Msg("cookie keys not configured, admin sessions will not survive a restart")
	}

	clock := clockwork.NewRealClock()

	app := &application{
		debug:          cfg.Debug,
		secureCookies:  cfg.Cookies.Secure,
		logger:         zlog,
		admins:         &models.AdminModel{PasswordHash: []byte(cfg.AdminPasswordHash)},
		tokens:         tokens.New(guard.SessionCookieName, cfg.Cookies.HashKey, cfg.Cookies.BlockKey, cfg.Cookies.Secure, clock),
		templateCache:  templateCache,
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
		clock:          clock,
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.routes(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		ErrorLog:     log.New(zlog, "", 0),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// openDB wraps sql.Open and returns a sql.DB connection pool for a given data source name
func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database pool initialization: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return db, nil
}
