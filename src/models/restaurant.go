package models

type Restaurant struct {
	ID        uint   `json:"id_restaurante"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
	Slug      string `json:"slug,omitempty"`
}
