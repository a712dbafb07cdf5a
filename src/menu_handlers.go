package main

import (
	"entremesa/src/controllers"
	"entremesa/src/middlewares"
	"entremesa/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// menuHandlers mounts the catalog mutations. Managers only.
func menuHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	menu := g.Group("/menu")
	menu.Use(middlewares.ManagerOnly)
	menu.
		POST("", func(ctx *gin.Context) {
			item, status, err := controllers.AddMenuItem(ctx)
			if err != nil {
				log.Printf("[AddMenuItem] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": item})
		}).
		PUT("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status, err := controllers.UpdateMenuItem(ctx, params.ID)
			if err != nil {
				log.Printf("[UpdateMenuItem] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "Platillo actualizado"})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status, err := controllers.DeleteMenuItem(ctx, params.ID)
			if err != nil {
				log.Printf("[DeleteMenuItem] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "Platillo eliminado"})
		})
	return g
}
