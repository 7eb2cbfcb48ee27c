package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
	"github.com/jhoicas/erp-stock-api/pkg/logger"
	"github.com/jhoicas/erp-stock-api/pkg/metrics"
)

// Dispatcher consume eventos de un canal y los persiste en activity_logs
// fuera de la transacción de stock. Cualquier error se loguea y se traga.
type Dispatcher struct {
	repo    repository.ActivityLogRepository
	log     *logger.Logger
	metrics *metrics.Metrics
	ch      chan Event
	wg      sync.WaitGroup
	once    sync.Once
}

// NewDispatcher construye el despachador con un buffer acotado.
func NewDispatcher(repo repository.ActivityLogRepository, log *logger.Logger, m *metrics.Metrics, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Dispatcher{
		repo:    repo,
		log:     log.WithComponent("audit"),
		metrics: m,
		ch:      make(chan Event, bufferSize),
	}
}

// Start arranca el worker. Llamar una sola vez.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.ch {
			d.persist(ev)
		}
	}()
}

// Notify encola el evento sin bloquear. Con el buffer lleno el evento se
// descarta con warning: la auditoría nunca frena una operación de stock.
func (d *Dispatcher) Notify(event Event) {
	select {
	case d.ch <- event:
	default:
		if d.metrics != nil {
			d.metrics.AuditEventsDroppedTotal.Inc()
		}
		d.log.Warn().
			Str("activity_type", event.ActivityType).
			Str("entity_id", event.EntityID).
			Msg("buffer de auditoría lleno, evento descartado")
	}
}

// Close cierra el canal y espera a que se drenen los eventos pendientes.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.ch) })
	d.wg.Wait()
}

func (d *Dispatcher) persist(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := &entity.ActivityLog{
		ID:           uuid.New().String(),
		ActivityType: ev.ActivityType,
		EntityType:   ev.EntityType,
		EntityID:     ev.EntityID,
		Title:        ev.Title,
		Description:  ev.Description,
		OldValues:    marshal(ev.OldValues),
		NewValues:    marshal(ev.NewValues),
		Severity:     ev.Severity,
		Icon:         ev.Icon,
		CreatedAt:    time.Now(),
	}
	if err := d.repo.Create(ctx, entry); err != nil {
		// Mejor esfuerzo: se reporta y se sigue.
		d.log.Error().Err(err).
			Str("activity_type", ev.ActivityType).
			Str("entity_id", ev.EntityID).
			Msg("persistir evento de auditoría")
	}
}

func marshal(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
