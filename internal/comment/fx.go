package comment

import (
	"github.com/productify/productify/internal/cache"
	"github.com/productify/productify/internal/comment/repository"
	"github.com/productify/productify/internal/comment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("comment.aggregator",
	fx.Provide(cache.NewSummaryCache),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
