package middlewares

import (
	"entremesa/src/types"
	"entremesa/src/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenAuth resolves the opaque bearer token against the remember_token
// column of the four role tables, in the same priority order the login uses.
// Logging in again rotates the token, so at most one session per principal
// can pass this check.
func TokenAuth(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
	if reqToken == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	principal, err := utils.FindPrincipalBy(ctx.Request.Context(), "remember_token", reqToken)
	if err != nil {
		log.Printf("Error resolving session token: %s\n", err.Error())
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if principal == nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ctx.Set("id", principal.ID)
	ctx.Set("tipo", string(principal.Tipo))
	ctx.Set("nombre", principal.Nombre)
	ctx.Set("correo", principal.Correo)
	ctx.Set("id_restaurante", principal.IDRestaurante)
	if principal.Tipo == types.ROLE_ADMIN {
		ctx.Set("departamento", principal.Departamento)
	}
}

// ManagerOnly guards routes that mutate a restaurant's catalog or staff.
// TokenAuth must run first.
func ManagerOnly(ctx *gin.Context) {
	tipo := ctx.GetString("tipo")
	if tipo != string(types.ROLE_GERENTE) && tipo != string(types.ROLE_ADMIN) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permisos insuficientes"})
	}
}
