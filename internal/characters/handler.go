package characters

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
	rg.GET("", h.list)                           // GET /api/characters?name=&age=&movie=
	rg.GET("/:id", h.getByID)                    // GET /api/characters/:id
	rg.POST("", h.create)                        // POST /api/characters
	rg.PUT("/:id", h.update)                     // PUT /api/characters/:id
	rg.PUT("/:id/movies/:movieId", h.attachWork) // PUT /api/characters/:id/movies/:movieId
	rg.DELETE("/:id", h.delete)                  // DELETE /api/characters/:id

	// legacy path for the same attach
	rg.PUT("/:id/audiovisualworks/:movieId", h.attachWork)
}

func (h *Handler) list(c *gin.Context) {
	age, err := httpx.OptionalInt(c, "age")
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	workID, err := httpx.OptionalInt64(c, "movie")
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	q, err := catalog.ResolveCharacterQuery(catalog.CharacterParams{
		Name:   httpx.OptionalString(c, "name"),
		Age:    age,
		WorkID: workID,
	})
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}

	listing, err := h.Engine.ListCharacters(c.Request.Context(), q)
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
	ch, err := h.Engine.GetCharacter(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *Handler) create(c *gin.Context) {
	var in catalog.CharacterInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.CreateCharacter(c.Request.Context(), in)
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
	var in catalog.CharacterInput
	if !httpx.BindJSON(c, &in) {
		return
	}
	out, err := h.Engine.UpdateCharacter(c.Request.Context(), id, in)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) attachWork(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		return
	}
	workID, ok := httpx.ParseID(c, "movieId")
	if !ok {
		return
	}
	out, err := h.Engine.AttachWorkToCharacter(c.Request.Context(), id, workID)
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
	out, err := h.Engine.DeleteCharacter(c.Request.Context(), id)
	if err != nil {
		httpx.Fail(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
