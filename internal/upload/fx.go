package upload

import (
	"context"
	"fmt"
	"os"

	"github.com/productify/productify/internal/config"
	"github.com/productify/productify/internal/upload/service"
	"go.uber.org/fx"
)

// ensureDir creates the uploads directory at startup so the service never
// races on first write. Idempotent across restarts.
func ensureDir(lc fx.Lifecycle, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				return fmt.Errorf("create uploads directory: %w", err)
			}
			return nil
		},
	})
}

var Module = fx.Module("upload.service",
	fx.Provide(service.New),
	fx.Invoke(ensureDir),
)
