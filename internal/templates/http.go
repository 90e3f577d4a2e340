package templates

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Register attaches the read-only catalog routes to rg.
func Register(rg *gin.RouterGroup) {
	rg.GET("", list)
	rg.GET("/categories", categories)
	rg.GET("/:id", get)
}

func list(c *gin.Context) {
	cat := Category(strings.TrimSpace(c.Query("category")))
	if cat == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "templates": All()})
		return
	}
	if !IsCategory(cat) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": ByCategory(cat)})
}

func categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": Categories()})
}

func get(c *gin.Context) {
	t, ok := ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "template": t})
}
