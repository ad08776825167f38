package dto

type CrearCitaRequest struct {
	ClienteNombre   string  `json:"cliente_nombre"   validate:"required,min=2"`
	ClienteEmail    string  `json:"cliente_email"    validate:"omitempty,email"`
	ClienteTelefono string  `json:"cliente_telefono" validate:"omitempty,min=7,max=20"`
	Servicio        string  `json:"servicio"         validate:"required,min=2"`
	Fecha           string  `json:"fecha"            validate:"required,datetime=2006-01-02"`
	Hora            string  `json:"hora"             validate:"required,datetime=15:04"`
	Notas           *string `json:"notas"            validate:"omitempty,max=500"`
}

type ActualizarEstadoCitaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente confirmada completada cancelada"`
}

type ReprogramarCitaRequest struct {
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora  string `json:"hora"  validate:"required,datetime=15:04"`
}

type CitaFilter struct {
	Fecha  string `form:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Estado string `form:"estado" validate:"omitempty,oneof=pendiente confirmada completada cancelada"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CitaResponse struct {
	ID              uint    `json:"id"`
	ClienteNombre   string  `json:"cliente_nombre"`
	ClienteEmail    string  `json:"cliente_email"`
	ClienteTelefono string  `json:"cliente_telefono"`
	Servicio        string  `json:"servicio"`
	Fecha           string  `json:"fecha"`
	Hora            string  `json:"hora"`
	Estado          string  `json:"estado"`
	Notas           *string `json:"notas,omitempty"`
}

type CitaListResponse struct {
	Data  []CitaResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
