package entity

import (
	"encoding/json"
	"time"
)

// ActivityLog es una entrada del registro de actividad (sumidero de auditoría).
// Se escribe después del commit, fuera de la transacción de stock: un fallo
// aquí nunca revierte la operación de inventario.
type ActivityLog struct {
	ID           string
	ActivityType string // ej. "stock.adjusted", "reservation.created"
	EntityType   string // ej. "product", "reservation"
	EntityID     string
	Title        string
	Description  string
	OldValues    json.RawMessage
	NewValues    json.RawMessage
	Severity     string // info, warning
	Icon         string
	CreatedAt    time.Time
}
