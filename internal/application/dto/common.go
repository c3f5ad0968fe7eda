package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockConflictResponse detalle de un conflicto de stock: qué equipo, cuánto
// hay disponible y cuántas unidades faltan. El cliente ofrece la ruta de
// actualizar stock en lugar de recortar cantidades en silencio.
type StockConflictResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	EquipmentID   string `json:"equipmentId"`
	EquipmentName string `json:"equipmentName"`
	Requested     int64  `json:"requested"`
	Available     int64  `json:"available"`
	Shortfall     int64  `json:"shortfall"`
}
