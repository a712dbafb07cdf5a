package main

import (
	"entremesa/src/controllers"
	"entremesa/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func restaurantHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/restaurantes", func(ctx *gin.Context) {
			data, status, err := controllers.ListRestaurants(ctx)
			if err != nil {
				log.Printf("[ListRestaurants] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": data})
		})

	restaurante := g.Group("/restaurante")
	restaurante.
		GET("/:id/stats", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			stats, status, err := controllers.GetRestaurantStats(ctx, params.ID)
			if err != nil {
				log.Printf("[GetRestaurantStats] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, stats)
		}).
		GET("/:id/mesas", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, status, err := controllers.GetRestaurantTables(ctx, params.ID)
			if err != nil {
				log.Printf("[GetRestaurantTables] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": data})
		}).
		GET("/:id/menu", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, status, err := controllers.GetRestaurantMenu(ctx, params.ID)
			if err != nil {
				log.Printf("[GetRestaurantMenu] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": data})
		}).
		GET("/:id/empleados", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, status, err := controllers.GetRestaurantEmployees(ctx, params.ID)
			if err != nil {
				log.Printf("[GetRestaurantEmployees] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, data)
		}).
		GET("/:id/qr-codes", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			codes, status, err := controllers.GetRestaurantQRCodes(ctx, params.ID)
			if err != nil {
				log.Printf("[GetRestaurantQRCodes] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": codes})
		})
	return g
}
