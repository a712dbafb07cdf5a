package controllers

import (
	"encoding/json"
	"entremesa/src/db"
	"entremesa/src/models"
	"entremesa/src/types"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

var errInvalidQR = errors.New("código QR no válido")

// resolveTable is the single resolution primitive behind every diner
// endpoint: one QR token maps to at most one table.
func resolveTable(ctx *gin.Context, codigoQR string) (*models.Mesa, int, error) {
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), "mesa", "*", db.Filters{"codigo_qr": codigoQR})
	if err != nil {
		log.Printf("Error looking up mesa by QR: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al validar código QR")
	}
	var mesas []models.Mesa
	if err := json.Unmarshal(body, &mesas); err != nil {
		return nil, http.StatusInternalServerError, errors.New("error al validar código QR")
	}
	if len(mesas) == 0 {
		return nil, http.StatusNotFound, errInvalidQR
	}
	return &mesas[0], http.StatusOK, nil
}

// ValidateQR is the validity-only projection, used before opening the
// ordering UI.
func ValidateQR(ctx *gin.Context, codigoQR string) (gin.H, int, error) {
	mesa, status, err := resolveTable(ctx, codigoQR)
	if err != nil {
		return nil, status, err
	}
	return gin.H{
		"valido":      true,
		"numero_mesa": mesa.NumeroMesa,
	}, http.StatusOK, nil
}

// MenuByQR hydrates the ordering UI: table, restaurant and that restaurant's
// menu only.
func MenuByQR(ctx *gin.Context, codigoQR string) (gin.H, int, error) {
	mesa, status, err := resolveTable(ctx, codigoQR)
	if err != nil {
		return nil, status, err
	}

	store := db.GetClient()
	restBody, err := store.Select(ctx.Request.Context(), "restaurantes", "id_restaurante,nombre,ubicacion", db.Filters{
		"id_restaurante": fmt.Sprint(mesa.IDRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving restaurante [%d]: %s\n", mesa.IDRestaurante, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al cargar el menú")
	}
	var restaurantes []models.Restaurant
	if err := json.Unmarshal(restBody, &restaurantes); err != nil || len(restaurantes) == 0 {
		return nil, http.StatusInternalServerError, errors.New("error al cargar el menú")
	}

	menuBody, err := store.Select(ctx.Request.Context(), "menu", "id_menu,nombre,descripcion,precio,categoria", db.Filters{
		"id_restaurante": fmt.Sprint(mesa.IDRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving menu for restaurante [%d]: %s\n", mesa.IDRestaurante, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al cargar el menú")
	}
	menu := json.RawMessage(menuBody)

	return gin.H{
		"mesa":        mesa,
		"restaurante": restaurantes[0],
		"menu":        menu,
	}, http.StatusOK, nil
}

// PlaceOrder records a diner order. The client sends quantities only as far
// as money is concerned: unit prices come from the store at order time and
// the total is recomputed from them, so menu edits never rewrite history and
// forged totals never persist.
func PlaceOrder(ctx *gin.Context) (gin.H, int, error) {
	var body types.PlaceOrderRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	mesa, status, err := resolveTable(ctx, body.CodigoQR)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, status, errors.New("mesa no encontrada")
		}
		return nil, status, err
	}

	store := db.GetClient()

	ids := make([]string, 0, len(body.Pedido))
	for _, line := range body.Pedido {
		ids = append(ids, fmt.Sprint(line.IDMenu))
	}
	// Scoping the price lookup to the table's restaurant also rejects menu
	// items smuggled in from another restaurant.
	menuBody, err := store.Select(ctx.Request.Context(), "menu", "id_menu,precio", db.Filters{
		"id_menu":        db.In(ids...),
		"id_restaurante": fmt.Sprint(mesa.IDRestaurante),
	})
	if err != nil {
		log.Printf("Error retrieving menu prices: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al registrar pedido")
	}
	prices := map[uint]float64{}
	for _, row := range gjson.ParseBytes(menuBody).Array() {
		prices[uint(row.Get("id_menu").Uint())] = row.Get("precio").Float()
	}

	var total float64
	for _, line := range body.Pedido {
		precio, ok := prices[line.IDMenu]
		if !ok {
			return nil, http.StatusUnprocessableEntity, fmt.Errorf("el platillo [%d] no pertenece al restaurante", line.IDMenu)
		}
		total += float64(line.Cantidad) * precio
	}

	pedido := models.Pedido{
		IDRestaurante: mesa.IDRestaurante,
		FechaHora:     time.Now().Format(time.RFC3339),
		Estado:        string(types.ORDER_PENDING),
		Total:         total,
		NumeroMesa:    mesa.ID,
	}
	created, err := store.Insert(ctx.Request.Context(), "pedidos", pedidoInsert(pedido), true)
	if err != nil {
		log.Printf("Error creating pedido: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al registrar pedido")
	}
	idPedido := uint(gjson.GetBytes(created, "0.id_pedido").Uint())
	if idPedido == 0 {
		return nil, http.StatusInternalServerError, errors.New("error al registrar pedido")
	}

	detalles := make([]models.DetallePedido, 0, len(body.Pedido))
	for _, line := range body.Pedido {
		detalles = append(detalles, models.DetallePedido{
			IDPedido:       idPedido,
			IDMenu:         line.IDMenu,
			Cantidad:       line.Cantidad,
			PrecioUnitario: prices[line.IDMenu],
		})
	}
	if _, err := store.Insert(ctx.Request.Context(), "detalle_pedido", detalles, false); err != nil {
		log.Printf("Error creating detalle_pedido for pedido [%d]: %s\n", idPedido, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al registrar pedido")
	}

	// Companion notification so the kitchen dashboard surfaces the new order
	// alongside the other service requests.
	if err := insertAtencion(ctx, types.ATTENTION_NEW_ORDER, mesa.ID, nil); err != nil {
		log.Printf("Error creating atencion for pedido [%d]: %s\n", idPedido, err.Error())
	}

	return gin.H{"id_pedido": idPedido, "total": total}, http.StatusOK, nil
}

// CallWaiter files a waiter request for the table. Requests are deliberately
// not deduplicated: two calls mean the diner pressed the button twice.
func CallWaiter(ctx *gin.Context) (gin.H, int, error) {
	var body types.CallWaiterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	mesa, status, err := resolveTable(ctx, body.CodigoQR)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, status, errors.New("mesa no encontrada")
		}
		return nil, status, err
	}
	if err := insertAtencion(ctx, types.ATTENTION_CALL_WAITER, mesa.ID, nil); err != nil {
		log.Printf("Error creating atencion: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al solicitar mesero")
	}
	return gin.H{"message": "Mesero notificado"}, http.StatusOK, nil
}

// RequestBill files a payment request. The declared total only travels in the
// informational note; the authoritative amount lives in the order rows.
func RequestBill(ctx *gin.Context) (gin.H, int, error) {
	var body types.RequestBillRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	mesa, status, err := resolveTable(ctx, body.CodigoQR)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, status, errors.New("mesa no encontrada")
		}
		return nil, status, err
	}
	nota := fmt.Sprintf("Total: $%.2f", body.Total)
	if err := insertAtencion(ctx, fmt.Sprintf("Pagar - %s", body.MetodoPago), mesa.ID, &nota); err != nil {
		log.Printf("Error creating atencion: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("error al solicitar cuenta")
	}
	return gin.H{"message": "Solicitud de pago enviada"}, http.StatusOK, nil
}

func insertAtencion(ctx *gin.Context, tipo string, idMesa uint, notas *string) error {
	store := db.GetClient()
	atencion := map[string]any{
		"tipo_solicitud":       tipo,
		"fecha_hora_solicitud": time.Now().Format(time.RFC3339),
		"estado":               string(types.ATTENTION_PENDING),
		"id_mesa":              idMesa,
	}
	if notas != nil {
		atencion["notas"] = *notas
	}
	_, err := store.Insert(ctx.Request.Context(), "atencion", atencion, false)
	return err
}

// pedidoInsert strips the generated id so the store assigns it.
func pedidoInsert(p models.Pedido) map[string]any {
	return map[string]any{
		"id_restaurante":    p.IDRestaurante,
		"fecha_hora_pedido": p.FechaHora,
		"estado":            p.Estado,
		"total":             p.Total,
		"numero_mesa":       p.NumeroMesa,
	}
}
