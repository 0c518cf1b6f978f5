// api/router.go
package api

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"partsdb/internal/parts"
	"partsdb/internal/reference"
)

// RequestLogger tags every request with a ULID id and logs it through
// zerolog once the handler chain finishes.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	var mu sync.Mutex
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(c *gin.Context) {
		mu.Lock()
		id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
		mu.Unlock()

		c.Header("X-Request-Id", id)
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// NewRouter assembles the KiCad contract plus the admin surface.
func NewRouter(store parts.Store, catalog map[string]reference.Directory, dbl []byte, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	kicadGroup := r.Group("/kicad-api/v1")
	{
		kicadGroup.GET("/", IndexHandler())
		kicadGroup.GET("/categories.json", CategoriesHandler(store))
		kicadGroup.GET("/parts/category/:cid", CategoryPartsHandler(store))
		kicadGroup.GET("/parts/:pid", PartHandler(store))
		kicadGroup.GET("/library.kicad_dbl", DBLHandler(dbl))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/categories", CreateCategoryHandler(store))
		apiGroup.GET("/categories", ListCategoriesHandler(store))

		apiGroup.POST("/parts", CreatePartHandler(store))
		apiGroup.GET("/parts", ListPartsHandler(store))
		apiGroup.GET("/parts/:id", GetPartHandler(store))
		apiGroup.PUT("/parts/:id", UpdatePartHandler(store))
		apiGroup.DELETE("/parts/:id", DeletePartHandler(store))

		apiGroup.GET("/reference/:name", ReferenceHandler(catalog))
	}

	return r
}

// RunServer builds the router and serves it on addr.
func RunServer(addr string, store parts.Store, catalog map[string]reference.Directory, dbl []byte, log zerolog.Logger) error {
	return NewRouter(store, catalog, dbl, log).Run(addr)
}
