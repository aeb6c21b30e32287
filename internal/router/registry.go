package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its own routes on the shared group.
// The user CRUD surface and the debug endpoint each implement it.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them all under /api once the
// engine-level middleware is in place.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
