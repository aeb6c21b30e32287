package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/correo/user-service/internal/interface/http"
	"github.com/correo/user-service/internal/interface/middleware"
)

// UserModule wires the user CRUD handlers into routes under /api/users.
// Identifier always travels in the path; create and update share one field
// set (name, email, phone).
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)
	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil)

	users := rg.Group("/users")
	{
		users.POST("", writeLimiter, m.Handler.Create)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
		users.DELETE("", writeLimiter, m.Handler.DeleteAll)
		users.GET("", readLimiter, m.Handler.GetAll)
		users.GET("/:id", readLimiter, m.Handler.GetByID)
	}
}
