package user

import (
	"github.com/productify/productify/internal/user/repository"
	"github.com/productify/productify/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
