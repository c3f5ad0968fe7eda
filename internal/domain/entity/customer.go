package entity

import "time"

// Customer representa un cliente de la empresa de alquiler de eventos.
// Name es obligatorio; los demás campos de contacto son opcionales y se
// guardan sin espacios al inicio/final.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerPatch campos para actualización por merge parcial: solo los
// punteros no nil pisan el valor existente; el resto queda intacto.
type CustomerPatch struct {
	Name    *string
	Phone   *string
	Address *string
	Email   *string
}
