package models

type MenuItem struct {
	ID            uint    `json:"id_menu"`
	IDRestaurante uint    `json:"id_restaurante"`
	Nombre        string  `json:"nombre"`
	Descripcion   *string `json:"descripcion"`
	Precio        float64 `json:"precio"`
	Categoria     string  `json:"categoria"`
}
