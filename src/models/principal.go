package models

import "entremesa/src/types"

// The four principal kinds live in disjoint store tables with their own id
// columns. Each converts to the shared role-tagged view.

type Manager struct {
	ID            uint   `json:"id_gerente"`
	Nombre        string `json:"nombre"`
	Correo        string `json:"correo_electronico"`
	Password      string `json:"password,omitempty"`
	RememberToken string `json:"remember_token,omitempty"`
	IDRestaurante uint   `json:"id_restaurante"`
}

func (m Manager) ToPrincipal() types.Principal {
	return types.Principal{
		ID:            m.ID,
		Tipo:          types.ROLE_GERENTE,
		Nombre:        m.Nombre,
		Correo:        m.Correo,
		PasswordHash:  m.Password,
		IDRestaurante: m.IDRestaurante,
	}
}

type Waiter struct {
	ID            uint   `json:"id_mesero"`
	Nombre        string `json:"nombre"`
	Correo        string `json:"correo_electronico"`
	Password      string `json:"password,omitempty"`
	RememberToken string `json:"remember_token,omitempty"`
	IDRestaurante uint   `json:"id_restaurante"`
}

func (w Waiter) ToPrincipal() types.Principal {
	return types.Principal{
		ID:            w.ID,
		Tipo:          types.ROLE_MESERO,
		Nombre:        w.Nombre,
		Correo:        w.Correo,
		PasswordHash:  w.Password,
		IDRestaurante: w.IDRestaurante,
	}
}

type Cook struct {
	ID            uint   `json:"id_cocinero"`
	Nombre        string `json:"nombre"`
	Correo        string `json:"correo_electronico"`
	Password      string `json:"password,omitempty"`
	RememberToken string `json:"remember_token,omitempty"`
	IDRestaurante uint   `json:"id_restaurante"`
}

func (c Cook) ToPrincipal() types.Principal {
	return types.Principal{
		ID:            c.ID,
		Tipo:          types.ROLE_COCINA,
		Nombre:        c.Nombre,
		Correo:        c.Correo,
		PasswordHash:  c.Password,
		IDRestaurante: c.IDRestaurante,
	}
}

type AppAdmin struct {
	ID            uint   `json:"id_admin_app"`
	Nombre        string `json:"nombre"`
	Correo        string `json:"correo_electronico"`
	Password      string `json:"password,omitempty"`
	RememberToken string `json:"remember_token,omitempty"`
	Departamento  string `json:"departamento"`
}

func (a AppAdmin) ToPrincipal() types.Principal {
	return types.Principal{
		ID:           a.ID,
		Tipo:         types.ROLE_ADMIN,
		Nombre:       a.Nombre,
		Correo:       a.Correo,
		PasswordHash: a.Password,
		Departamento: a.Departamento,
	}
}
