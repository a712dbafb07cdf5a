package models

// Atencion is a staff-facing notification: waiter calls, bill requests and
// new-order notices all land here so dashboards poll a single table.
type Atencion struct {
	ID            uint    `json:"id_atencion"`
	TipoSolicitud string  `json:"tipo_solicitud"`
	FechaHora     string  `json:"fecha_hora_solicitud"`
	Estado        string  `json:"estado"`
	IDMesa        uint    `json:"id_mesa"`
	Notas         *string `json:"notas,omitempty"`
}
