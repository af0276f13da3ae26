package handler

import (
	"github.com/gin-gonic/gin"

	"emptycup-directory/internal/service"
	httpez "emptycup-directory/internal/transport/http/ez"
)

// DesignerHandler 用户端只读目录
type DesignerHandler struct {
	catalog *service.CatalogService
}

func NewDesignerHandler(catalog *service.CatalogService) *DesignerHandler {
	return &DesignerHandler{catalog: catalog}
}

func (h *DesignerHandler) Priority() int { return 10 }

func (h *DesignerHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	ez.GET("/designers", func(c *gin.Context) (any, error) {
		ps, err := h.catalog.List(c.Request.Context())
		if err != nil {
			return nil, fail(err)
		}
		return ps, nil
	})

	ez.GET("/designers/:id", func(c *gin.Context) (any, error) {
		id, err := paramID(c, "id")
		if err != nil {
			return nil, err
		}
		p, err := h.catalog.Get(c.Request.Context(), id)
		if err != nil {
			return nil, fail(err)
		}
		return p, nil
	})
}
