package stock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock-api/internal/domain"
	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los adaptadores PostgreSQL.
// El runner toma un snapshot al entrar y lo restaura si fn falla, así los
// tests verifican la atomicidad todo-o-nada igual que con una tx real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	movements    []*entity.StockMovement
	adjustments  []*entity.StockAdjustment
	reservations map[string]*entity.StockReservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     make(map[string]*entity.Product),
		reservations: make(map[string]*entity.StockReservation),
	}
}

func (s *fakeStore) addProduct(p *entity.Product) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	s.products[p.ID] = &cp
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		snap.movements = append(snap.movements, &cm)
	}
	for _, a := range s.adjustments {
		ca := *a
		snap.adjustments = append(snap.adjustments, &ca)
	}
	for id, r := range s.reservations {
		cr := *r
		if r.ReleasedAt != nil {
			t := *r.ReleasedAt
			cr.ReleasedAt = &t
		}
		snap.reservations[id] = &cr
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.movements = snap.movements
	s.adjustments = snap.adjustments
	s.reservations = snap.reservations
}

// fakeTxRunner serializa las "transacciones" con un mutex, como hace la fila
// bloqueada en PostgreSQL, y revierte al snapshot si fn devuelve error.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repos Repos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	if err := fn(r.repos()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunReadOnly(ctx context.Context, fn func(repos Repos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.repos())
}

func (r *fakeTxRunner) repos() Repos {
	return Repos{
		Products:     &fakeProductRepo{s: r.store},
		Movements:    &fakeMovementRepo{s: r.store},
		Adjustments:  &fakeAdjustmentRepo{s: r.store},
		Reservations: &fakeReservationRepo{s: r.store},
	}
}

// ── Productos ────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	s *fakeStore
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU && !existing.IsDeleted {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku && !p.IsDeleted {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	// El mutex del runner ya serializa; bloquear la fila es un no-op aquí.
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.s.products[p.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.UnitPrice = p.UnitPrice
	existing.CostPrice = p.CostPrice
	existing.MinimumStock = p.MinimumStock
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, currentStock int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = currentStock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.s.products[id]
	if !ok || p.IsDeleted {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if !p.IsDeleted {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return strings.Compare(list[i].Name, list[j].Name) < 0 })
	return paginate(list, limit, offset), nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if !p.IsDeleted && p.MinimumStock != nil && p.CurrentStock <= *p.MinimumStock {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CurrentStock-*list[i].MinimumStock < list[j].CurrentStock-*list[j].MinimumStock
	})
	return paginate(list, limit, offset), nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	s *fakeStore
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && m.MovementDate.After(*to) {
			continue
		}
		cm := *m
		list = append(list, &cm)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MovementDate.After(list[j].MovementDate) })
	return paginate(list, limit, offset), nil
}

func (r *fakeMovementRepo) SumByProduct(_ context.Context, productID string) (int64, error) {
	var sum int64
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

type fakeAdjustmentRepo struct {
	s *fakeStore
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	ca := *a
	r.s.adjustments = append(r.s.adjustments, &ca)
	return nil
}

func (r *fakeAdjustmentRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var list []*entity.StockAdjustment
	for _, a := range r.s.adjustments {
		if a.ProductID == productID {
			ca := *a
			list = append(list, &ca)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AdjustedAt.After(list[j].AdjustedAt) })
	return paginate(list, limit, offset), nil
}

// ── Reservas ─────────────────────────────────────────────────────────────────

type fakeReservationRepo struct {
	s *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, resv *entity.StockReservation) error {
	if resv.ID == "" {
		resv.ID = uuid.New().String()
	}
	cr := *resv
	r.s.reservations[resv.ID] = &cr
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id string) (*entity.StockReservation, error) {
	resv, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cr := *resv
	return &cr, nil
}

func (r *fakeReservationRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockReservation, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeReservationRepo) Release(_ context.Context, resv *entity.StockReservation) error {
	existing, ok := r.s.reservations[resv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.IsReleased {
		return domain.ErrConflict
	}
	existing.IsReleased = true
	if resv.ReleasedAt != nil {
		t := *resv.ReleasedAt
		existing.ReleasedAt = &t
	}
	return nil
}

func (r *fakeReservationRepo) SumActiveByProduct(_ context.Context, productID string) (int64, error) {
	var sum int64
	for _, resv := range r.s.reservations {
		if resv.ProductID == productID && !resv.IsReleased {
			sum += resv.ReservedQuantity
		}
	}
	return sum, nil
}

func (r *fakeReservationRepo) ListActiveByProduct(_ context.Context, productID string) ([]*entity.StockReservation, error) {
	var list []*entity.StockReservation
	for _, resv := range r.s.reservations {
		if resv.ProductID == productID && !resv.IsReleased {
			cr := *resv
			list = append(list, &cr)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ReservedAt.Before(list[j].ReservedAt) })
	return list, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
