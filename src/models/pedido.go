package models

type Pedido struct {
	ID            uint    `json:"id_pedido"`
	IDRestaurante uint    `json:"id_restaurante"`
	FechaHora     string  `json:"fecha_hora_pedido"`
	Estado        string  `json:"estado"`
	Total         float64 `json:"total"`
	// NumeroMesa holds the mesa id; the column name is a leftover of the
	// store schema and cannot be renamed from this side.
	NumeroMesa uint `json:"numero_mesa"`
}

type DetallePedido struct {
	ID             uint    `json:"id_detalle,omitempty"`
	IDPedido       uint    `json:"id_pedido"`
	IDMenu         uint    `json:"id_menu"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}
