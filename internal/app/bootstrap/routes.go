// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	approvalsfeature "github.com/dalemusser/brewlab/internal/app/features/approvals"
	authgooglefeature "github.com/dalemusser/brewlab/internal/app/features/authgoogle"
	beansfeature "github.com/dalemusser/brewlab/internal/app/features/beans"
	errorsfeature "github.com/dalemusser/brewlab/internal/app/features/errors"
	experimentsfeature "github.com/dalemusser/brewlab/internal/app/features/experiments"
	healthfeature "github.com/dalemusser/brewlab/internal/app/features/health"
	homefeature "github.com/dalemusser/brewlab/internal/app/features/home"
	loginfeature "github.com/dalemusser/brewlab/internal/app/features/login"
	logoutfeature "github.com/dalemusser/brewlab/internal/app/features/logout"
	machinesfeature "github.com/dalemusser/brewlab/internal/app/features/machines"
	pendingfeature "github.com/dalemusser/brewlab/internal/app/features/pending"
	simulatorfeature "github.com/dalemusser/brewlab/internal/app/features/simulator"
	streamfeature "github.com/dalemusser/brewlab/internal/app/features/stream"
	beanstore "github.com/dalemusser/brewlab/internal/app/store/beans"
	experimentstore "github.com/dalemusser/brewlab/internal/app/store/experiments"
	machinestore "github.com/dalemusser/brewlab/internal/app/store/machines"
	userstore "github.com/dalemusser/brewlab/internal/app/store/users"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup,
// and Startup have completed. It creates the session manager, boots the
// template engine, builds the shared live hub, and mounts the feature
// routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on every request, so approvals and admin grants
	// take effect without re-login.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// The live hub is shared by every store and stream connection. Its
	// loaders use hub-less stores so a reload never re-notifies.
	hub := live.NewHub(live.Loaders{
		Beans:       beanstore.New(deps.MongoDatabase, nil).List,
		Machines:    machinestore.New(deps.MongoDatabase, nil).List,
		Experiments: experimentstore.New(deps.MongoDatabase, nil).List,
	}, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// The three-state gate: / routes to login, pending, or app.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	googleEnabled := appCfg.GoogleClientID != ""
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, googleEnabled, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	if googleEnabled {
		googleHandler := authgooglefeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
			[]byte(appCfg.SessionKey), logger)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	pendingHandler := pendingfeature.NewHandler(logger)
	r.Mount("/pending", pendingfeature.Routes(pendingHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// The app proper: page, mutations, live stream, simulator.
	experimentsHandler := experimentsfeature.NewHandler(deps.MongoDatabase, hub, errLog, logger)
	r.Mount("/app", experimentsfeature.Routes(experimentsHandler, sessionMgr))

	streamHandler := streamfeature.NewHandler(hub, logger)
	r.Mount("/stream", streamfeature.Routes(streamHandler, sessionMgr))

	simulatorHandler := simulatorfeature.NewHandler(deps.MongoDatabase, hub, logger)
	r.Mount("/simulate", simulatorfeature.Routes(simulatorHandler, sessionMgr))

	beansHandler := beansfeature.NewHandler(deps.MongoDatabase, hub, errLog, logger)
	r.Mount("/beans", beansfeature.Routes(beansHandler, sessionMgr))

	machinesHandler := machinesfeature.NewHandler(deps.MongoDatabase, hub, errLog, logger)
	r.Mount("/machines", machinesfeature.Routes(machinesHandler, sessionMgr))

	// Admin
	approvalsHandler := approvalsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/admin/approvals", approvalsfeature.Routes(approvalsHandler, sessionMgr))

	return r, nil
}
