// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// the handler timeout tiers from the environment and makes sure the upload
// directory exists so application photo saves don't fail on first use.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.ConfigureFromEnv()

	if appCfg.UploadDir != "" {
		if err := os.MkdirAll(appCfg.UploadDir, 0o775); err != nil {
			return fmt.Errorf("create upload dir %s: %w", appCfg.UploadDir, err)
		}
	}

	return nil
}
