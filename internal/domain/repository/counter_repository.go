package repository

// CounterRepository define el puerto del consecutivo de facturación.
type CounterRepository interface {
	// NextInvoiceNumber asigna y persiste el siguiente número de factura en
	// una sola operación atómica. Llamado dentro de la transacción del
	// commit: si el commit falla, la asignación se revierte y el consecutivo
	// no avanza (sin huecos ni repetidos).
	NextInvoiceNumber() (int64, error)
	// Current devuelve el último número emitido (0 si nunca se ha facturado).
	Current() (int64, error)
}
