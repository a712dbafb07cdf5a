package controllers

import (
	"encoding/json"
	"entremesa/src/config"
	"entremesa/src/db"
	"entremesa/src/types"
	"entremesa/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/tidwall/gjson"
)

const defaultCapacity = 4

// RegisterRestaurant provisions a restaurant, its manager, its tables (each
// with a unique QR token) and the initial menu. The store has no cross-call
// transactions, so any step failing after the first compensates by deleting
// whatever was created before reporting the error.
func RegisterRestaurant(ctx *gin.Context) (*types.ProvisionResult, int, error) {
	var body types.RegisterRestaurantRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	numMesas := body.NumMesas
	if numMesas == 0 {
		numMesas = 1
	}

	store := db.GetClient()
	rctx := ctx.Request.Context()

	created, err := store.Insert(rctx, "restaurantes", map[string]any{
		"nombre":    body.Nombre,
		"ubicacion": body.Ubicacion,
		"slug":      slug.Make(body.Nombre),
	}, true)
	if err != nil {
		log.Printf("Error creating restaurante: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
	}
	idRestaurante := uint(gjson.GetBytes(created, "0.id_restaurante").Uint())
	if idRestaurante == 0 {
		return nil, http.StatusInternalServerError, errors.New("no se pudo obtener el ID del restaurante insertado")
	}

	compensate := func() {
		// Best-effort rollback of the partial provisioning, children first.
		filters := db.Filters{"id_restaurante": fmt.Sprint(idRestaurante)}
		for _, table := range []string{"menu", "mesa", "gerentes"} {
			if err := store.DeleteWhere(rctx, table, filters); err != nil {
				log.Printf("Error compensating %s for restaurante [%d]: %s\n", table, idRestaurante, err.Error())
			}
		}
		if err := store.Delete(rctx, "restaurantes", "id_restaurante", idRestaurante); err != nil {
			log.Printf("Error compensating restaurante [%d]: %s\n", idRestaurante, err.Error())
		}
	}

	passwordHash, err := utils.HashPassword(body.Gerente.Password)
	if err != nil {
		compensate()
		return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
	}
	if _, err := store.Insert(rctx, "gerentes", map[string]any{
		"nombre":             body.Gerente.Nombre,
		"correo_electronico": body.Gerente.CorreoElectronico,
		"password":           passwordHash,
		"id_restaurante":     idRestaurante,
	}, false); err != nil {
		log.Printf("Error creating gerente: %s\n", err.Error())
		compensate()
		return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
	}

	mesas := make([]map[string]any, 0, numMesas)
	for i := 1; i <= numMesas; i++ {
		mesas = append(mesas, map[string]any{
			"id_restaurante": idRestaurante,
			"numero_mesa":    utils.TableNumber(i),
			"codigo_qr":      utils.NewQRCode(),
			"capacidad":      defaultCapacity,
			"estado":         string(types.TABLE_AVAILABLE),
		})
	}
	if _, err := store.Insert(rctx, "mesa", mesas, false); err != nil {
		log.Printf("Error creating mesas: %s\n", err.Error())
		compensate()
		return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
	}

	if len(body.Menu) > 0 {
		items := make([]map[string]any, 0, len(body.Menu))
		for _, item := range body.Menu {
			items = append(items, map[string]any{
				"id_restaurante": idRestaurante,
				"nombre":         item.Nombre,
				"descripcion":    item.Descripcion,
				"precio":         item.Precio,
				"categoria":      item.Categoria,
			})
		}
		if _, err := store.Insert(rctx, "menu", items, false); err != nil {
			log.Printf("Error creating menu: %s\n", err.Error())
			compensate()
			return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
		}
	}

	firstQR := mesas[0]["codigo_qr"].(string)
	menuURL := config.MenuURL(firstQR)
	qrImage, err := utils.RenderQRImage(menuURL)
	if err != nil {
		log.Printf("Error rendering QR image: %s\n", err.Error())
		compensate()
		return nil, http.StatusInternalServerError, errors.New("error al registrar el restaurante")
	}

	return &types.ProvisionResult{
		IDRestaurante:   idRestaurante,
		NumMesasCreadas: numMesas,
		QRCodeURL:       menuURL,
		QRCodeKey:       firstQR,
		QRImage:         qrImage,
	}, http.StatusCreated, nil
}

func ListRestaurants(ctx *gin.Context) (json.RawMessage, int, error) {
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), "restaurantes", "*", nil)
	if err != nil {
		log.Printf("Error retrieving restaurantes: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener los restaurantes")
	}
	return json.RawMessage(body), http.StatusOK, nil
}
