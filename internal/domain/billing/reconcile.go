package billing

import (
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// Decrement es una entrada del plan de commit: cuánto descontar del stock
// de cada equipo referenciado por el carrito.
type Decrement struct {
	EquipmentID string
	Quantity    int64 // demanda agregada de todas las líneas para este equipo
}

// AggregateDemand suma la cantidad pedida por todas las líneas que
// referencian cada equipo. Varias líneas pueden apuntar al mismo equipo y
// compiten por el mismo stock compartido.
func AggregateDemand(lines []CartLine) map[string]int64 {
	demand := make(map[string]int64, len(lines))
	for _, line := range lines {
		demand[line.EquipmentID] += line.Quantity
	}
	return demand
}

// Reconcile decide si el carrito puede comprometerse sin dejar ningún stock
// negativo, contra la foto de inventario recibida (que debe ser fresca:
// leída justo antes del commit, no una copia vieja en memoria).
//
// Devuelve el plan de decrementos en el orden de primera aparición de cada
// equipo en el carrito, o un *domain.StockConflictError con el equipo
// ofendido, su disponible y el faltante. Nunca aplica parcialmente.
func Reconcile(lines []CartLine, stock map[string]*entity.Equipment) ([]Decrement, error) {
	demand := AggregateDemand(lines)

	plan := make([]Decrement, 0, len(demand))
	seen := make(map[string]bool, len(demand))
	for _, line := range lines {
		if seen[line.EquipmentID] {
			continue
		}
		seen[line.EquipmentID] = true

		eq := stock[line.EquipmentID]
		available := int64(0)
		name := line.EquipmentName
		if eq != nil {
			available = eq.Quantity
			name = eq.Name
		}
		requested := demand[line.EquipmentID]
		if requested > available {
			return nil, &domain.StockConflictError{
				EquipmentID:   line.EquipmentID,
				EquipmentName: name,
				Requested:     requested,
				Available:     available,
			}
		}
		plan = append(plan, Decrement{EquipmentID: line.EquipmentID, Quantity: requested})
	}
	return plan, nil
}

// CheckLineAgainstStock es la verificación interactiva al agregar o editar
// una sola línea: demanda de las demás líneas para este equipo + la cantidad
// de esta línea contra el stock disponible. skipIndex es el índice de la
// línea en edición (-1 para un alta). Si excede, se rechaza con
// *domain.StockConflictError y el llamador ofrece actualizar el stock en vez
// de recortar la cantidad en silencio.
func CheckLineAgainstStock(lines []CartLine, skipIndex int, eq *entity.Equipment, qty int64) error {
	var others int64
	for i, line := range lines {
		if i == skipIndex {
			continue
		}
		if line.EquipmentID == eq.ID {
			others += line.Quantity
		}
	}
	if others+qty > eq.Quantity {
		return &domain.StockConflictError{
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
			Requested:     others + qty,
			Available:     eq.Quantity,
		}
	}
	return nil
}
