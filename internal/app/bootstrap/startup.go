// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/brewlab/internal/app/resources"
	userstore "github.com/dalemusser/brewlab/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadLayoutTemplates()

	// Bootstrap the approval chain: someone must hold admin before
	// anyone else can be approved.
	if appCfg.SuperAdminEmail != "" {
		users := userstore.New(deps.MongoDatabase)
		if err := users.PromoteAdmin(ctx, appCfg.SuperAdminEmail); err != nil {
			// The account may simply not exist yet; promotion happens on
			// the next startup after it signs up.
			logger.Warn("superadmin promotion skipped",
				zap.String("email", appCfg.SuperAdminEmail),
				zap.Error(err))
		} else {
			logger.Info("superadmin ensured", zap.String("email", appCfg.SuperAdminEmail))
		}
	}

	return nil
}
