package types

type RoleType string

const (
	ROLE_GERENTE RoleType = "gerente"
	ROLE_MESERO  RoleType = "mesero"
	ROLE_COCINA  RoleType = "cocina"
	ROLE_ADMIN   RoleType = "admin"
)

// Table returns the store table holding principals of this role.
func (r RoleType) Table() string {
	switch r {
	case ROLE_GERENTE:
		return "gerentes"
	case ROLE_MESERO:
		return "mesero"
	case ROLE_COCINA:
		return "cocinero"
	case ROLE_ADMIN:
		return "administrador_app"
	}
	return ""
}

func (r RoleType) IDColumn() string {
	switch r {
	case ROLE_GERENTE:
		return "id_gerente"
	case ROLE_MESERO:
		return "id_mesero"
	case ROLE_COCINA:
		return "id_cocinero"
	case ROLE_ADMIN:
		return "id_admin_app"
	}
	return ""
}

// RolePriority is the lookup order across the disjoint role tables. When the
// same email exists in more than one table the earlier role wins. The store
// only enforces email uniqueness per table, so the tie-break has to live here
// and is applied by every principal lookup.
var RolePriority = []RoleType{ROLE_GERENTE, ROLE_MESERO, ROLE_COCINA, ROLE_ADMIN}

// Principal is the role-tagged view of an authenticated actor, resolved from
// whichever role table matched.
type Principal struct {
	ID            uint
	Tipo          RoleType
	Nombre        string
	Correo        string
	PasswordHash  string
	IDRestaurante uint
	Departamento  string
}

type OrderStatus string

const (
	ORDER_PENDING OrderStatus = "Pendiente"
	ORDER_IN_PREP OrderStatus = "EnPreparacion"
	ORDER_READY   OrderStatus = "Listo"
)

type AttentionStatus string

const (
	ATTENTION_PENDING  AttentionStatus = "Pendiente"
	ATTENTION_ATTENDED AttentionStatus = "Atendida"
)

type TableStatus string

const (
	TABLE_AVAILABLE TableStatus = "Disponible"
	TABLE_OCCUPIED  TableStatus = "Ocupada"
)

const (
	ATTENTION_NEW_ORDER   = "Nuevo pedido"
	ATTENTION_CALL_WAITER = "Solicitar mesero"
)

type LoginRequestBody struct {
	CorreoElectronico string `json:"correo_electronico" binding:"required,email"`
	Password          string `json:"password" binding:"required"`
}

type RestaurantUserData struct {
	ID        uint   `json:"id"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
}

type UserData struct {
	ID           uint                `json:"id"`
	Tipo         RoleType            `json:"tipo"`
	Nombre       string              `json:"nombre"`
	Correo       string              `json:"correo"`
	Restaurante  *RestaurantUserData `json:"restaurante,omitempty"`
	Departamento string              `json:"departamento,omitempty"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserData `json:"user"`
}

type MenuItemRequestBody struct {
	Nombre      string  `json:"nombre" binding:"required,notblank,max=100"`
	Descripcion *string `json:"descripcion" binding:"omitempty,max=255"`
	Precio      float64 `json:"precio" binding:"min=0"`
	Categoria   string  `json:"categoria" binding:"required,max=50"`
}

type RegisterManagerRequestBody struct {
	Nombre            string `json:"nombre" binding:"required,max=100"`
	CorreoElectronico string `json:"correo_electronico" binding:"required,email,max=100"`
	Password          string `json:"password" binding:"required,min=6,max=100"`
}

type RegisterRestaurantRequestBody struct {
	Nombre    string                     `json:"nombre" binding:"required,notblank,max=100"`
	Ubicacion string                     `json:"ubicacion" binding:"required,notblank,max=150"`
	NumMesas  int                        `json:"num_mesas" binding:"omitempty,min=1,max=200"`
	Gerente   RegisterManagerRequestBody `json:"gerente" binding:"required"`
	Menu      []MenuItemRequestBody      `json:"menu" binding:"omitempty,dive"`
}

type ProvisionResult struct {
	IDRestaurante   uint   `json:"id_restaurante"`
	NumMesasCreadas int    `json:"num_mesas_creadas"`
	QRCodeURL       string `json:"qr_code_url"`
	QRCodeKey       string `json:"qr_code_key"`
	QRImage         string `json:"qr_image"`
}

type CreateMenuRequestBody struct {
	IDRestaurante uint `json:"id_restaurante" binding:"required"`
	MenuItemRequestBody
}

type OrderLineRequestBody struct {
	IDMenu   uint `json:"id_menu" binding:"required"`
	Cantidad int  `json:"cantidad" binding:"required,min=1"`
}

type PlaceOrderRequestBody struct {
	CodigoQR string                 `json:"codigo_qr" binding:"required"`
	Pedido   []OrderLineRequestBody `json:"pedido" binding:"required,min=1,dive"`
	// Total is what the client computed for display. It is never trusted:
	// the server recomputes the order total from store prices.
	Total float64 `json:"total"`
}

type CallWaiterRequestBody struct {
	CodigoQR string `json:"codigo_qr" binding:"required"`
}

type RequestBillRequestBody struct {
	CodigoQR   string  `json:"codigo_qr" binding:"required"`
	MetodoPago string  `json:"metodo_pago" binding:"required,max=50"`
	Total      float64 `json:"total" binding:"min=0"`
}

type RegisterStaffRequestBody struct {
	Nombre            string `json:"nombre" binding:"required,max=100"`
	CorreoElectronico string `json:"correo_electronico" binding:"required,email,max=100"`
	Password          string `json:"password" binding:"required,min=6"`
	IDRestaurante     uint   `json:"id_restaurante" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type UpdateStatusRequestBody struct {
	Estado string `json:"estado" binding:"required"`
}
