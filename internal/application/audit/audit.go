package audit

// Event es un evento de auditoría generado después del commit de una
// operación de stock. Mejor esfuerzo: perderlo nunca revierte la operación.
type Event struct {
	ActivityType string // ej. "stock.adjusted", "reservation.created"
	EntityType   string // ej. "product", "reservation"
	EntityID     string
	Title        string
	Description  string
	OldValues    interface{} // serializado a JSON por el despachador
	NewValues    interface{}
	Severity     string // info, warning
	Icon         string
}

// Notifier publica eventos de auditoría sin bloquear al llamador.
// Los casos de uso lo invocan estrictamente después del commit.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier descarta todos los eventos (tests, tooling).
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
