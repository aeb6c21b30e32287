package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/correo/user-service/config"
	userapp "github.com/correo/user-service/internal/application"
	pginfra "github.com/correo/user-service/internal/infrastructure/postgres"
	handlers "github.com/correo/user-service/internal/interface/http"
	"github.com/correo/user-service/internal/router/modules"
	"github.com/correo/user-service/pkg/helpers"
)

// Deps carries the infrastructure singletons built in main. Modules receive
// everything through constructors; there is no ambient registry.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Events *helpers.RabbitPublisher
}

// InitModules wires repository, service and handlers and registers every
// module with the router registry. Call once during startup.
func InitModules(r *Registry, deps Deps) {
	repo := pginfra.NewUserRepository(deps.Pool)
	service := userapp.NewService(repo, deps.Logger, deps.Events)
	handler := handlers.NewUserHandler(service, deps.Logger)

	r.Add(modules.NewUserModule(handler, deps.Redis))
	if deps.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(deps.Redis))
	}
}
