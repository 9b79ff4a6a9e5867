package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, config *Config) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/validate-ranges", HandleValidateRanges)
		apiGroup.POST("/page-count", func(c *gin.Context) { HandlePageCount(c, config) })
		apiGroup.POST("/extract-pages", func(c *gin.Context) { HandleExtractPages(c, config) })
		apiGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, config) })
		apiGroup.POST("/split", func(c *gin.Context) { HandleSplit(c, config) })
	}
}
