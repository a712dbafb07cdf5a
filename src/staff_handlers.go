package main

import (
	"entremesa/src/controllers"
	"entremesa/src/middlewares"
	"entremesa/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// staffHandlers mounts staff registration, the role dashboards and the
// order/service-request state transitions.
func staffHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/meseros", middlewares.ManagerOnly, func(ctx *gin.Context) {
			res, status, err := controllers.RegisterStaff(ctx, types.ROLE_MESERO)
			if err != nil {
				log.Printf("[RegisterStaff mesero] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		POST("/cocineros", middlewares.ManagerOnly, func(ctx *gin.Context) {
			res, status, err := controllers.RegisterStaff(ctx, types.ROLE_COCINA)
			if err != nil {
				log.Printf("[RegisterStaff cocinero] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		GET("/mesero/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.GetWaiterDashboard(ctx, params.ID)
			if err != nil {
				log.Printf("[GetWaiterDashboard] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		GET("/cocinero/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.GetCookDashboard(ctx, params.ID)
			if err != nil {
				log.Printf("[GetCookDashboard] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		PUT("/atencion/:id/atender", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.AttendRequest(ctx, params.ID)
			if err != nil {
				log.Printf("[AttendRequest] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		PUT("/pedidos/:id/estado", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.UpdateOrderStatus(ctx, params.ID)
			if err != nil {
				log.Printf("[UpdateOrderStatus] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		PUT("/mesas/:id/estado", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.UpdateTableStatus(ctx, params.ID)
			if err != nil {
				log.Printf("[UpdateTableStatus] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		})
	return g
}
