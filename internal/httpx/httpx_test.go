package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cataloghub/internal/catalog"
)

func TestStatusFor(t *testing.T) {
	cases := map[catalog.Kind]int{
		catalog.KindNotFound:           http.StatusNotFound,
		catalog.KindNoMatch:            http.StatusNotFound,
		catalog.KindIdentifierMismatch: http.StatusBadRequest,
		catalog.KindValidation:         http.StatusBadRequest,
		catalog.KindConflict:           http.StatusConflict,
		"":                             http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusFor(kind), string(kind))
	}
}

func serve(t *testing.T, log *zap.Logger, target string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/items/:id", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestFailWritesKindAndMissing(t *testing.T) {
	err := &catalog.Error{Kind: catalog.KindNotFound, Message: "gone", Missing: []string{"works"}}
	w := serve(t, zap.NewNop(), "/items/1", func(c *gin.Context) { Fail(c, nil, err) })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"gone","kind":"not_found","missing":["works"]}`, w.Body.String())
}

func TestFailHidesInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	w := serve(t, log, "/items/1", func(c *gin.Context) { Fail(c, log, errors.New("disk on fire")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
	require.Equal(t, 1, logs.FilterMessage("request failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("request").Len())
}

func TestParseID(t *testing.T) {
	var got int64
	h := func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if ok {
			got = id
			c.Status(http.StatusNoContent)
		}
	}

	w := serve(t, zap.NewNop(), "/items/42", h)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(42), got)

	for _, bad := range []string{"0", "-3", "abc"} {
		w = serve(t, zap.NewNop(), "/items/"+bad, h)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestOptionalParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?name=Alpha&blank=%20&age=31&genre=x", nil)

	require.NotNil(t, OptionalString(c, "name"))
	assert.Equal(t, "Alpha", *OptionalString(c, "name"))
	assert.Nil(t, OptionalString(c, "blank"))
	assert.Nil(t, OptionalString(c, "missing"))

	age, err := OptionalInt(c, "age")
	require.NoError(t, err)
	assert.Equal(t, 31, *age)

	none, err := OptionalInt(c, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = OptionalInt64(c, "genre")
	assert.Equal(t, catalog.KindValidation, catalog.KindOf(err))
}
