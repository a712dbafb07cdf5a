package main

import (
	"entremesa/src/controllers"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// comensalHandlers mounts the diner-facing routes. The QR token in the body
// or path is the diner's only credential, so none of these sit behind the
// auth middleware.
func comensalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/validar-qr/:codigo", func(ctx *gin.Context) {
			var params struct {
				Codigo string `uri:"codigo" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"valido": false, "error": err.Error()})
				return
			}
			res, status, err := controllers.ValidateQR(ctx, params.Codigo)
			if err != nil {
				log.Printf("[ValidateQR] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"valido": false, "error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		GET("/menu-comensal/:codigo", func(ctx *gin.Context) {
			var params struct {
				Codigo string `uri:"codigo" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, status, err := controllers.MenuByQR(ctx, params.Codigo)
			if err != nil {
				log.Printf("[MenuByQR] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		POST("/pedido-comensal", func(ctx *gin.Context) {
			res, status, err := controllers.PlaceOrder(ctx)
			if err != nil {
				log.Printf("[PlaceOrder] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		POST("/solicitar-mesero", func(ctx *gin.Context) {
			res, status, err := controllers.CallWaiter(ctx)
			if err != nil {
				log.Printf("[CallWaiter] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		}).
		POST("/solicitar-cuenta", func(ctx *gin.Context) {
			res, status, err := controllers.RequestBill(ctx)
			if err != nil {
				log.Printf("[RequestBill] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, res)
		})
	return g
}
