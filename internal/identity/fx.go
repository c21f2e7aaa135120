package identity

import (
	"github.com/productify/productify/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.provider",
	fx.Provide(service.New),
)
