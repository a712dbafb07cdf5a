package controllers

import (
	"encoding/json"
	"entremesa/src/config"
	"entremesa/src/db"
	"entremesa/src/models"
	"entremesa/src/types"
	"entremesa/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// GetRestaurantStats aggregates today's sales total, table occupancy and
// today's order count for the manager dashboard.
func GetRestaurantStats(ctx *gin.Context, idRestaurante uint) (gin.H, int, error) {
	store := db.GetClient()
	rctx := ctx.Request.Context()
	today := db.Filters{
		"id_restaurante":    fmt.Sprint(idRestaurante),
		"fecha_hora_pedido": db.Gte(startOfDay(time.Now().In(config.TimeLocation()))),
	}

	totalVentas, err := store.SumWhere(rctx, "pedidos", "total", today)
	if err != nil {
		log.Printf("Error aggregating sales for restaurante [%d]: %s\n", idRestaurante, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener estadísticas")
	}

	mesasBody, err := store.Select(rctx, "mesa", "estado", db.Filters{"id_restaurante": fmt.Sprint(idRestaurante)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error al obtener estadísticas")
	}
	var disponibles, ocupadas int
	for _, row := range gjson.ParseBytes(mesasBody).Array() {
		switch row.Get("estado").String() {
		case string(types.TABLE_AVAILABLE):
			disponibles++
		case string(types.TABLE_OCCUPIED):
			ocupadas++
		}
	}

	pedidosHoy, err := store.CountWhere(rctx, "pedidos", today)
	if err != nil {
		log.Printf("Error counting pedidos for restaurante [%d]: %s\n", idRestaurante, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener estadísticas")
	}

	return gin.H{
		"totalVentas":      totalVentas,
		"mesasDisponibles": disponibles,
		"mesasOcupadas":    ocupadas,
		"pedidosHoy":       pedidosHoy,
	}, http.StatusOK, nil
}

func GetRestaurantTables(ctx *gin.Context, idRestaurante uint) (json.RawMessage, int, error) {
	return selectByRestaurant(ctx, "mesa", "*", idRestaurante)
}

func GetRestaurantMenu(ctx *gin.Context, idRestaurante uint) (json.RawMessage, int, error) {
	return selectByRestaurant(ctx, "menu", "*", idRestaurante)
}

// GetRestaurantEmployees lists waiters and cooks without their credential
// columns.
func GetRestaurantEmployees(ctx *gin.Context, idRestaurante uint) (gin.H, int, error) {
	const staffColumns = "id_mesero,nombre,correo_electronico,id_restaurante"
	store := db.GetClient()
	meseros, err := store.Select(ctx.Request.Context(), "mesero", staffColumns, db.Filters{
		"id_restaurante": fmt.Sprint(idRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving meseros: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener empleados")
	}
	cocineros, err := store.Select(ctx.Request.Context(), "cocinero", "id_cocinero,nombre,correo_electronico,id_restaurante", db.Filters{
		"id_restaurante": fmt.Sprint(idRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving cocineros: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener empleados")
	}
	return gin.H{
		"meseros":   json.RawMessage(meseros),
		"cocineros": json.RawMessage(cocineros),
	}, http.StatusOK, nil
}

// GetRestaurantQRCodes renders a printable QR entry for every table.
func GetRestaurantQRCodes(ctx *gin.Context, idRestaurante uint) ([]gin.H, int, error) {
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), "mesa", "id_mesa,numero_mesa,codigo_qr", db.Filters{
		"id_restaurante": fmt.Sprint(idRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving mesas: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al obtener códigos QR")
	}
	var mesas []models.Mesa
	if err := json.Unmarshal(body, &mesas); err != nil {
		return nil, http.StatusInternalServerError, errors.New("error al obtener códigos QR")
	}
	out := make([]gin.H, 0, len(mesas))
	for _, mesa := range mesas {
		menuURL := config.MenuURL(mesa.CodigoQR)
		image, err := utils.RenderQRImage(menuURL)
		if err != nil {
			log.Printf("Error rendering QR for mesa [%d]: %s\n", mesa.ID, err.Error())
			return nil, http.StatusInternalServerError, errors.New("error al obtener códigos QR")
		}
		out = append(out, gin.H{
			"id_mesa":     mesa.ID,
			"numero_mesa": mesa.NumeroMesa,
			"qr_url":      menuURL,
			"qr_image":    image,
		})
	}
	return out, http.StatusOK, nil
}

func AddMenuItem(ctx *gin.Context) (json.RawMessage, int, error) {
	var body types.CreateMenuRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	store := db.GetClient()
	created, err := store.Insert(ctx.Request.Context(), "menu", map[string]any{
		"id_restaurante": body.IDRestaurante,
		"nombre":         body.Nombre,
		"descripcion":    body.Descripcion,
		"precio":         body.Precio,
		"categoria":      body.Categoria,
	}, true)
	if err != nil {
		log.Printf("Error creating menu item: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al agregar platillo")
	}
	return json.RawMessage(gjson.GetBytes(created, "0").Raw), http.StatusCreated, nil
}

func UpdateMenuItem(ctx *gin.Context, idMenu uint) (int, error) {
	var body types.MenuItemRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusUnprocessableEntity, err
	}
	store := db.GetClient()
	if err := store.Update(ctx.Request.Context(), "menu", "id_menu", idMenu, map[string]any{
		"nombre":      body.Nombre,
		"descripcion": body.Descripcion,
		"precio":      body.Precio,
		"categoria":   body.Categoria,
	}); err != nil {
		log.Printf("Error updating menu item [%d]: %s\n", idMenu, err.Error())
		return http.StatusInternalServerError, errors.New("error al actualizar platillo")
	}
	return http.StatusOK, nil
}

func DeleteMenuItem(ctx *gin.Context, idMenu uint) (int, error) {
	store := db.GetClient()
	if err := store.Delete(ctx.Request.Context(), "menu", "id_menu", idMenu); err != nil {
		log.Printf("Error deleting menu item [%d]: %s\n", idMenu, err.Error())
		return http.StatusInternalServerError, errors.New("error al eliminar platillo")
	}
	return http.StatusOK, nil
}

// startOfDay renders midnight of now's day, in now's zone, in the store's
// timestamp format.
func startOfDay(now time.Time) string {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Format(time.RFC3339)
}

func selectByRestaurant(ctx *gin.Context, table, columns string, idRestaurante uint) (json.RawMessage, int, error) {
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), table, columns, db.Filters{
		"id_restaurante": fmt.Sprint(idRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving %s for restaurante [%d]: %s\n", table, idRestaurante, err.Error())
		return nil, http.StatusInternalServerError, fmt.Errorf("error al obtener %s", table)
	}
	return json.RawMessage(body), http.StatusOK, nil
}
