package invoice

import (
	"github.com/fairmog/tagihin/internal/invoice/repository"
	"github.com/fairmog/tagihin/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
