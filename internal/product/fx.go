package product

import (
	"github.com/productify/productify/internal/product/repository"
	"github.com/productify/productify/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
