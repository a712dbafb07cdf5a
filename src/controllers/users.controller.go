package controllers

import (
	"encoding/json"
	"entremesa/src/db"
	"entremesa/src/models"
	"entremesa/src/types"
	"entremesa/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

var errAlreadyHandled = errors.New("la solicitud ya fue atendida")

// RegisterStaff creates a waiter or cook. Email uniqueness is checked against
// that role's table only; the cross-table tie-break is the login priority
// order.
func RegisterStaff(ctx *gin.Context, role types.RoleType) (gin.H, int, error) {
	var body types.RegisterStaffRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}

	store := db.GetClient()
	rctx := ctx.Request.Context()
	existing, err := store.Select(rctx, role.Table(), role.IDColumn(), db.Filters{
		"correo_electronico": body.CorreoElectronico,
	})
	if err != nil {
		log.Printf("Error checking %s email: %s\n", role.Table(), err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	if len(gjson.ParseBytes(existing).Array()) > 0 {
		return nil, http.StatusConflict, errors.New("el correo electrónico ya está registrado")
	}

	passwordHash, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	created, err := store.Insert(rctx, role.Table(), map[string]any{
		"nombre":             body.Nombre,
		"correo_electronico": body.CorreoElectronico,
		"password":           passwordHash,
		"id_restaurante":     body.IDRestaurante,
	}, true)
	if err != nil {
		log.Printf("Error creating %s: %s\n", role.Table(), err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	id := gjson.GetBytes(created, "0."+role.IDColumn()).Uint()
	return gin.H{role.IDColumn(): id}, http.StatusCreated, nil
}

// GetWaiterDashboard is the waiter's poll target: pending service requests
// for their restaurant's tables, plus open orders and table states.
func GetWaiterDashboard(ctx *gin.Context, idMesero uint) (gin.H, int, error) {
	store := db.GetClient()
	rctx := ctx.Request.Context()

	body, err := store.Select(rctx, "mesero", "*", db.Filters{"id_mesero": fmt.Sprint(idMesero)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	var meseros []models.Waiter
	if err := json.Unmarshal(body, &meseros); err != nil || len(meseros) == 0 {
		return nil, http.StatusNotFound, errors.New("mesero no encontrado")
	}
	mesero := meseros[0]

	mesasBody, err := store.Select(rctx, "mesa", "*", db.Filters{"id_restaurante": fmt.Sprint(mesero.IDRestaurante)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	var mesas []models.Mesa
	if err := json.Unmarshal(mesasBody, &mesas); err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}

	solicitudes, err := pendingRequestsForTables(ctx, mesas)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}

	pedidosBody, err := store.Select(rctx, "pedidos", "*", db.Filters{"id_restaurante": fmt.Sprint(mesero.IDRestaurante)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}

	return gin.H{
		"id_mesero":          mesero.ID,
		"nombre":             mesero.Nombre,
		"correo_electronico": mesero.Correo,
		"solicitudes":        solicitudes,
		"pedidos":            json.RawMessage(pedidosBody),
		"mesas":              json.RawMessage(mesasBody),
	}, http.StatusOK, nil
}

// GetCookDashboard returns the kitchen's order queue.
func GetCookDashboard(ctx *gin.Context, idCocinero uint) (gin.H, int, error) {
	store := db.GetClient()
	rctx := ctx.Request.Context()

	body, err := store.Select(rctx, "cocinero", "*", db.Filters{"id_cocinero": fmt.Sprint(idCocinero)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	var cocineros []models.Cook
	if err := json.Unmarshal(body, &cocineros); err != nil || len(cocineros) == 0 {
		return nil, http.StatusNotFound, errors.New("cocinero no encontrado")
	}
	cocinero := cocineros[0]

	pedidosBody, err := store.Select(rctx, "pedidos", "*", db.Filters{"id_restaurante": fmt.Sprint(cocinero.IDRestaurante)})
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}

	return gin.H{
		"id_cocinero":        cocinero.ID,
		"nombre":             cocinero.Nombre,
		"correo_electronico": cocinero.Correo,
		"pedidos":            json.RawMessage(pedidosBody),
	}, http.StatusOK, nil
}

// AttendRequest flips one service request from Pendiente to Atendida with a
// compare-and-swap on the status, so two staff members racing on the same
// request resolve to exactly one winner.
func AttendRequest(ctx *gin.Context, idAtencion uint) (gin.H, int, error) {
	store := db.GetClient()
	updated, err := store.UpdateWhere(ctx.Request.Context(), "atencion", db.Filters{
		"id_atencion": fmt.Sprint(idAtencion),
		"estado":      string(types.ATTENTION_PENDING),
	}, map[string]string{"estado": string(types.ATTENTION_ATTENDED)})
	if err != nil {
		log.Printf("Error attending atencion [%d]: %s\n", idAtencion, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	if len(gjson.ParseBytes(updated).Array()) == 0 {
		return nil, http.StatusConflict, errAlreadyHandled
	}
	return gin.H{"message": "Solicitud atendida"}, http.StatusOK, nil
}

// orderTransitions maps each reachable state to the state it must be left
// from. Pendiente -> EnPreparacion -> Listo, staff-driven only.
var orderTransitions = map[types.OrderStatus]types.OrderStatus{
	types.ORDER_IN_PREP: types.ORDER_PENDING,
	types.ORDER_READY:   types.ORDER_IN_PREP,
}

func UpdateOrderStatus(ctx *gin.Context, idPedido uint) (gin.H, int, error) {
	var body types.UpdateStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	next := types.OrderStatus(body.Estado)
	prev, ok := orderTransitions[next]
	if !ok {
		return nil, http.StatusBadRequest, fmt.Errorf("estado no válido: %s", body.Estado)
	}

	store := db.GetClient()
	updated, err := store.UpdateWhere(ctx.Request.Context(), "pedidos", db.Filters{
		"id_pedido": fmt.Sprint(idPedido),
		"estado":    string(prev),
	}, map[string]string{"estado": string(next)})
	if err != nil {
		log.Printf("Error updating pedido [%d]: %s\n", idPedido, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	if len(gjson.ParseBytes(updated).Array()) == 0 {
		return nil, http.StatusConflict, fmt.Errorf("el pedido no está en estado %s", prev)
	}
	return gin.H{"id_pedido": idPedido, "estado": string(next)}, http.StatusOK, nil
}

func UpdateTableStatus(ctx *gin.Context, idMesa uint) (gin.H, int, error) {
	var body types.UpdateStatusRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	estado := types.TableStatus(body.Estado)
	if estado != types.TABLE_AVAILABLE && estado != types.TABLE_OCCUPIED {
		return nil, http.StatusBadRequest, fmt.Errorf("estado no válido: %s", body.Estado)
	}
	store := db.GetClient()
	if err := store.Update(ctx.Request.Context(), "mesa", "id_mesa", idMesa, map[string]string{
		"estado": string(estado),
	}); err != nil {
		log.Printf("Error updating mesa [%d]: %s\n", idMesa, err.Error())
		return nil, http.StatusInternalServerError, errors.New("error en el servidor")
	}
	return gin.H{"id_mesa": idMesa, "estado": string(estado)}, http.StatusOK, nil
}

func pendingRequestsForTables(ctx *gin.Context, mesas []models.Mesa) (json.RawMessage, error) {
	if len(mesas) == 0 {
		return json.RawMessage("[]"), nil
	}
	ids := make([]string, 0, len(mesas))
	for _, mesa := range mesas {
		ids = append(ids, fmt.Sprint(mesa.ID))
	}
	store := db.GetClient()
	body, err := store.Select(ctx.Request.Context(), "atencion", "*", db.Filters{
		"id_mesa": db.In(ids...),
		"estado":  string(types.ATTENTION_PENDING),
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
