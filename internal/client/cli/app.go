package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/api"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/client/storage"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// notifier is the part of services.NotificationService the CLI uses.
type notifier interface {
	Preferences(ctx context.Context) (models.NotificationPreferences, error)
	SetPreferences(ctx context.Context, p models.NotificationPreferences) error
	Append(ctx context.Context, message string) (models.NotificationItem, error)
	List(ctx context.Context) ([]models.NotificationItem, error)
	Clear(ctx context.Context) error
}

type App struct {
	config        *config.Config
	log           logging.Logger
	db            *sql.DB
	authService   services.AuthService
	notifications notifier
	reader        *bufio.Reader
	out           io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local database and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	kv := storage.NewSQLiteStore(db)
	sessions := session.NewStore(kv, log)

	apiClient := api.NewHTTPClient(api.HTTPConfig{
		BaseURL:  c.ServerURL,
		Timeout:  c.RequestTimeout,
		PingPath: c.PingPath,
	}, nil, log)
	apiClient.SetTokenSource(sessions.Token)

	return &App{
		config:        c,
		log:           log,
		db:            db,
		authService:   services.NewAuthService(apiClient, sessions, log),
		notifications: services.NewNotificationService(kv, log),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

// Mode reports the last observed backend reachability.
func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "switched mode", "mode", mode)
	}
}

// Run restores the persisted session and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.authService.Restore(ctx); err != nil {
		return err
	}

	printlnFn("Welcome to the Lost & Found CLI (type 'help' for commands)")
	if u := a.authService.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Signed in as %s (%s)", u.Username, u.Role))
	}

	a.checkOnline(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.State() == services.StateAuthenticated
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.CurrentUser(); u != nil {
		s = u.Username + " "
	} else if a.authService.State() == services.StateCredentialsSubmitted {
		s = "otp pending "
	}
	s = strings.TrimSpace(s + string(a.Mode()))
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the backend every interval and flips the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
