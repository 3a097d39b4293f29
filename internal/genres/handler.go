package genres

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cataloghub/internal/catalog"
	"cataloghub/internal/httpx"
)

type Handler struct {
	Engine *catalog.Engine
	Log    *zap.Logger
}

func NewHandler(engine *catalog.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Engine: engine, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)          // GET /api/genres
	rg.GET("/:id", h.getByID)   // GET /api/genres/:id
	rg.POST("", h.create)       // POST /api/genres
	rg.PUT("/:id", h.update)    // PUT /api/genres/:id
	rg.DELETE("/:id", h.delete) // DELETE /api/genres/:id
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Engine.ListGenres(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	g, err := h.Engine.GetGenre(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) create(c *gin.Context) {
	var in catalog.GenreInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.CreateGenre(c.Request.Context(), in)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	var in catalog.GenreInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.UpdateGenre(c.Request.Context(), id, in)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	out, err := h.Engine.DeleteGenre(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
