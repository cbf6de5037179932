package catalog

import (
	"github.com/fairmog/tagihin/internal/catalog/repository"
	"github.com/fairmog/tagihin/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
