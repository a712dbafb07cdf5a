package models

type Mesa struct {
	ID            uint   `json:"id_mesa"`
	IDRestaurante uint   `json:"id_restaurante"`
	NumeroMesa    string `json:"numero_mesa"`
	CodigoQR      string `json:"codigo_qr"`
	Capacidad     int    `json:"capacidad"`
	Estado        string `json:"estado"`
}
