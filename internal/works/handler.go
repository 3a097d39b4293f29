package works

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
	rg.GET("", h.list)                            // GET /api/movies?name=&genre=&order=
	rg.GET("/:id", h.getByID)                     // GET /api/movies/:id
	rg.POST("", h.create)                         // POST /api/movies
	rg.PUT("/:id", h.update)                      // PUT /api/movies/:id
	rg.PUT("/:id/genres/:genreId", h.attachGenre) // PUT /api/movies/:id/genres/:genreId
	rg.DELETE("/:id", h.delete)                   // DELETE /api/movies/:id
}

func (h *Handler) list(c *gin.Context) {
	genreID, err := httpx.OptionalInt64(c, "genre")
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	q, err := catalog.ResolveWorkQuery(catalog.WorkParams{
		Name:    httpx.OptionalString(c, "name"),
		GenreID: genreID,
		Order:   httpx.OptionalString(c, "order"),
	})
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	listing, err := h.Engine.ListWorks(c.Request.Context(), q)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, listing.Payload())
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	w, err := h.Engine.GetWork(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *Handler) create(c *gin.Context) {
	var in catalog.WorkInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.CreateWork(c.Request.Context(), in)
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
	var in catalog.WorkInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.UpdateWork(c.Request.Context(), id, in)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) attachGenre(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	genreID, ok := httpx.ParseID(c, "genreId")
	if !ok {
		return
	}
	out, err := h.Engine.AttachGenreToWork(c.Request.Context(), id, genreID)
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
	out, err := h.Engine.DeleteWork(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
