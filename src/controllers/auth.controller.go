package controllers

import (
	"entremesa/src/db"
	"entremesa/src/lib"
	"entremesa/src/types"
	"entremesa/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// errInvalidCredentials covers both unknown emails and wrong passwords so the
// response never reveals which one failed.
var errInvalidCredentials = errors.New("credenciales incorrectas")

func AuthLogin(ctx *gin.Context) (*types.LoginResponse, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	principal, err := utils.FindPrincipalBy(ctx.Request.Context(), "correo_electronico", body.CorreoElectronico)
	if err != nil {
		log.Printf("Error looking up principal: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	if principal == nil {
		log.Printf("Login failed for [%s]\n", body.CorreoElectronico)
		return nil, http.StatusUnauthorized, errInvalidCredentials
	}
	if !utils.CheckPassword(principal.PasswordHash, body.Password) {
		log.Printf("Login failed for [%s]\n", body.CorreoElectronico)
		return nil, http.StatusUnauthorized, errInvalidCredentials
	}

	// One active session per principal: issuing a new token invalidates the
	// previous one.
	token := utils.RandomToken(60)
	store := db.GetClient()
	if err := store.Update(
		ctx.Request.Context(),
		principal.Tipo.Table(),
		principal.Tipo.IDColumn(),
		principal.ID,
		map[string]string{"remember_token": token},
	); err != nil {
		log.Printf("Error persisting session token for [%s %d]: %s\n", principal.Tipo, principal.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}

	user := types.UserData{
		ID:     principal.ID,
		Tipo:   principal.Tipo,
		Nombre: principal.Nombre,
		Correo: principal.Correo,
	}
	if principal.Tipo == types.ROLE_ADMIN {
		user.Departamento = principal.Departamento
	} else {
		restaurante, err := lookupRestaurant(ctx, principal.IDRestaurante)
		if err != nil {
			log.Printf("Error retrieving restaurant [%d]: %s\n", principal.IDRestaurante, err.Error())
			return nil, http.StatusInternalServerError, errors.New("error en el servidor")
		}
		user.Restaurante = restaurante
	}

	go lib.CachePrincipal(principal)

	return &types.LoginResponse{Token: token, User: user}, http.StatusOK, nil
}

func lookupRestaurant(ctx *gin.Context, id uint) (*types.RestaurantUserData, error) {
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), "restaurantes", "nombre,ubicacion", db.Filters{
		"id_restaurante": fmt.Sprint(id),
	})
	if err != nil {
		return nil, err
	}
	row := gjson.GetBytes(body, "0")
	if !row.Exists() {
		return nil, fmt.Errorf("restaurant %d not found", id)
	}
	return &types.RestaurantUserData{
		ID:        id,
		Nombre:    row.Get("nombre").String(),
		Ubicacion: row.Get("ubicacion").String(),
	}, nil
}
