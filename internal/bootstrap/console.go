package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/target/mmk-rag-console/config"
	"github.com/target/mmk-rag-console/internal/apiclient"
	"github.com/target/mmk-rag-console/internal/router"
	"github.com/target/mmk-rag-console/internal/service"
	"github.com/target/mmk-rag-console/internal/session"
)

// ConsoleOptions contains everything needed to assemble a Console.
type ConsoleOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// HTTPClient is optional; its Transport is wrapped, never replaced.
	HTTPClient *http.Client
	// SessionID overrides ResolveSessionID when set.
	SessionID string
	// Routes replaces router.DefaultRoutes; the table invariants still apply.
	Routes []router.Route
}

// Console is the wired client core. Each component is built exactly once and
// shares the single credential store.
type Console struct {
	SessionID string
	Store     *session.Store
	API       *apiclient.Client
	Auth      *service.AuthService
	Routes    *router.Table
	Guard     *router.Guard
	Navigator *router.Navigator

	closeSlot func() error
}

// BuildConsole wires store, gateway client, auth flow and guard.
func BuildConsole(ctx context.Context, opts ConsoleOptions) (*Console, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = ResolveSessionID(opts.Config.Session)
	}

	routeList := opts.Routes
	if len(routeList) == 0 {
		routeList = router.DefaultRoutes()
	}
	routes, err := router.NewTable(routeList...)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	slot, closeSlot, err := OpenTokenSlot(ctx, SlotOptions{
		Session:   opts.Config.Session,
		Redis:     opts.Config.Redis,
		SessionID: sessionID,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore(session.StoreOptions{Slot: slot, Logger: logger})

	api, err := apiclient.New(apiclient.Options{
		BaseURL:     opts.Config.API.BaseURL,
		Credentials: store,
		HTTPClient:  opts.HTTPClient,
		Logger:      logger,
	})
	if err != nil {
		if closeErr := closeSlot(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close token slot: %w", closeErr))
		}
		return nil, fmt.Errorf("create api client: %w", err)
	}

	guard := router.NewGuard(routes, store)

	logger.DebugContext(ctx, "console ready",
		"session_id", sessionID,
		"backend", string(opts.Config.Session.Backend),
		"api", api.BaseURL(),
	)

	return &Console{
		SessionID: sessionID,
		Store:     store,
		API:       api,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Gateway:   api,
			Store:     store,
			SessionID: sessionID,
			Logger:    logger,
		}),
		Routes:    routes,
		Guard:     guard,
		Navigator: router.NewNavigator(routes, guard),
		closeSlot: closeSlot,
	}, nil
}

// Close releases the durable slot. It is safe to call more than once.
func (c *Console) Close() error {
	if c == nil || c.closeSlot == nil {
		return nil
	}
	closeSlot := c.closeSlot
	c.closeSlot = nil
	if err := closeSlot(); err != nil {
		return fmt.Errorf("close token slot: %w", err)
	}
	return nil
}
