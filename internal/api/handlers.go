package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"partsdb/internal/parts"
	"partsdb/internal/reference"
)

// GET /kicad-api/v1/
// KiCad only validates the key set here; the values are unused.
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": "", "parts": ""})
	}
}

// GET /kicad-api/v1/categories.json
func CategoriesHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := store.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]gin.H, 0, len(cats))
		for _, cat := range cats {
			out = append(out, gin.H{"id": cat.ID, "name": cat.DisplayName})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /kicad-api/v1/parts/category/:cid  (cid carries a ".json" suffix)
func CategoryPartsHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := strings.TrimSuffix(c.Param("cid"), ".json")
		list, err := store.PartsByCategory(c.Request.Context(), cid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]gin.H, 0, len(list))
		for _, p := range list {
			id := strconv.FormatInt(p.SequenceNumber, 10)
			name := p.Name
			if name == "" {
				name = id
			}
			out = append(out, gin.H{"id": id, "name": name, "description": p.Description})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /kicad-api/v1/parts/:pid  (pid carries a ".json" suffix)
func PartHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSuffix(c.Param("pid"), ".json")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown part"})
			return
		}
		p, err := store.Part(c.Request.Context(), id)
		if errors.Is(err, parts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown part"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, PartToFields(p))
	}
}

// GET /kicad-api/v1/library.kicad_dbl
func DBLHandler(dbl []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", dbl)
	}
}

// --- admin surface ---

// POST /api/categories
func CreateCategoryHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cat parts.Category
		if err := c.ShouldBindJSON(&cat); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if strings.TrimSpace(cat.DisplayName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name is required"})
			return
		}
		if err := store.CreateCategory(c.Request.Context(), &cat); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// GET /api/categories
func ListCategoriesHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := store.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// POST /api/parts
func CreatePartHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p parts.Part
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if errs := validatePart(&p); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		if err := store.CreatePart(c.Request.Context(), &p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// GET /api/parts?q=...
func ListPartsHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.Parts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		q := c.Query("q")
		out := make([]parts.Part, 0, len(list))
		for i := range list {
			if matchQuery(&list[i], q) {
				out = append(out, list[i])
			}
		}
		c.Header("X-Total-Count", strconv.Itoa(len(out)))
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/parts/:id
func GetPartHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		p, err := store.Part(c.Request.Context(), id)
		if errors.Is(err, parts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// PUT /api/parts/:id
func UpdatePartHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		var p parts.Part
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		p.SequenceNumber = id
		if errs := validatePart(&p); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		err = store.UpdatePart(c.Request.Context(), &p)
		if errors.Is(err, parts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DELETE /api/parts/:id  (soft delete)
func DeletePartHandler(store parts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		err = store.DeletePart(c.Request.Context(), id)
		if errors.Is(err, parts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func validatePart(p *parts.Part) []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		errs = append(errs, "category_id is required")
	}
	if strings.TrimSpace(p.SymbolID) == "" {
		errs = append(errs, "symbol_id is required")
	}
	return errs
}

// GET /api/reference/:name
func ReferenceHandler(catalog map[string]reference.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		dir, ok := catalog[c.Param("name")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown reference directory"})
			return
		}
		c.JSON(http.StatusOK, dir)
	}
}
