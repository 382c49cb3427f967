package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repositories ───────────────────────────────────────────────────
// All stubs return copies so callers never alias stored rows, and ignore the
// tx argument: runTx passes nil because DB() is nil.

var (
	_ repository.BatchRepository         = (*stubBatchRepo)(nil)
	_ repository.InventoryRepository     = (*stubInventoryRepo)(nil)
	_ repository.QualityReportRepository = (*stubReportRepo)(nil)
	_ repository.AlertRepository         = (*stubAlertRepo)(nil)
	_ repository.UserRepository          = (*stubUserRepo)(nil)
	_ repository.ManufacturerRepository  = (*stubManufacturerRepo)(nil)
)

type stubBatchRepo struct {
	mu      sync.Mutex
	batches map[uuid.UUID]model.Batch
}

func newStubBatchRepo() *stubBatchRepo {
	return &stubBatchRepo{batches: make(map[uuid.UUID]model.Batch)}
}

func (r *stubBatchRepo) Create(_ context.Context, b *model.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.batches[b.ID] = *b
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubBatchRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *stubBatchRepo) match(b model.Batch, f repository.BatchFilter) bool {
	if f.ManufacturerID != nil && b.ManufacturerID != *f.ManufacturerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.QualityStatus != "" && b.QualityStatus != f.QualityStatus {
		return false
	}
	return true
}

func (r *stubBatchRepo) List(_ context.Context, f repository.BatchFilter) ([]model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Batch
	for _, b := range r.batches {
		if r.match(b, f) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBatchRepo) Count(ctx context.Context, f repository.BatchFilter) (int64, error) {
	bs, _ := r.List(ctx, f)
	return int64(len(bs)), nil
}

func (r *stubBatchRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status model.BatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	r.batches[id] = b
	return nil
}

func (r *stubBatchRepo) UpdateQualityStatusTx(_ *gorm.DB, id uuid.UUID, status model.QualityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.QualityStatus = status
	r.batches[id] = b
	return nil
}

func (r *stubBatchRepo) DB() *gorm.DB { return nil }

func (r *stubBatchRepo) get(id uuid.UUID) model.Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches[id]
}

type stubInventoryRepo struct {
	mu          sync.Mutex
	lines       map[uuid.UUID]model.InventoryLine
	listErr     error
	expiringErr error
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{lines: make(map[uuid.UUID]model.InventoryLine)}
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryLine, error) {
	return r.FindByIDForUpdateTx(nil, id)
}

func (r *stubInventoryRepo) FindByBatchID(_ context.Context, batchID uuid.UUID) (*model.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.BatchID == batchID {
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventoryRepo) filter(keep func(model.InventoryLine) bool) ([]model.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.InventoryLine
	for _, l := range r.lines {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryLine, error) {
	return r.filter(func(model.InventoryLine) bool { return true })
}

func (r *stubInventoryRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]model.InventoryLine, error) {
	if r.expiringErr != nil {
		return nil, r.expiringErr
	}
	return r.filter(func(l model.InventoryLine) bool {
		return !l.ExpiryDate.Before(from) && !l.ExpiryDate.After(to)
	})
}

func (r *stubInventoryRepo) ListExpiredBefore(_ context.Context, t time.Time) ([]model.InventoryLine, error) {
	return r.filter(func(l model.InventoryLine) bool { return l.ExpiryDate.Before(t) })
}

func (r *stubInventoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.lines)), nil
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, line *model.InventoryLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.BatchID == line.BatchID {
			return gorm.ErrDuplicatedKey
		}
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *stubInventoryRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.InventoryLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *stubInventoryRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.CurrentStock = stock
	l.LastUpdated = at
	r.lines[id] = l
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

func (r *stubInventoryRepo) put(l model.InventoryLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[l.ID] = l
}

func (r *stubInventoryRepo) get(id uuid.UUID) model.InventoryLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[id]
}

type stubReportRepo struct {
	mu      sync.Mutex
	reports []model.QualityReport
}

func (r *stubReportRepo) CreateTx(_ *gorm.DB, rep *model.QualityReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, *rep)
	return nil
}

func (r *stubReportRepo) List(_ context.Context) ([]model.QualityReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.QualityReport(nil), r.reports...), nil
}

func (r *stubReportRepo) ListByBatch(_ context.Context, batchID uuid.UUID) ([]model.QualityReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.QualityReport
	for _, rep := range r.reports {
		if rep.BatchID == batchID {
			out = append(out, rep)
		}
	}
	return out, nil
}

type alertKey struct {
	batchID uuid.UUID
	typ     model.AlertType
}

type stubAlertRepo struct {
	mu        sync.Mutex
	alerts    []model.Alert
	createErr error
}

func (r *stubAlertRepo) CreateIfAbsent(_ context.Context, a *model.Alert) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return false, r.createErr
	}
	if a.BatchID != nil {
		key := alertKey{*a.BatchID, a.AlertType}
		for _, existing := range r.alerts {
			if existing.BatchID != nil && (alertKey{*existing.BatchID, existing.AlertType}) == key {
				return false, nil
			}
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.alerts = append(r.alerts, *a)
	return true, nil
}

func (r *stubAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAlertRepo) List(_ context.Context, unreadOnly bool) ([]model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Alert
	for _, a := range r.alerts {
		if unreadOnly && a.IsRead {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubAlertRepo) MarkRead(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAlertRepo) MarkEmailSent(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].EmailSent = true
		}
	}
	return nil
}

func (r *stubAlertRepo) CountUnread(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *stubAlertRepo) ofType(t model.AlertType) []model.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Alert
	for _, a := range r.alerts {
		if a.AlertType == t {
			out = append(out, a)
		}
	}
	return out
}

type stubUserRepo struct {
	mu    sync.Mutex
	users []model.User
	err   error
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role model.UserRole) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubManufacturerRepo struct {
	ms map[uuid.UUID]model.Manufacturer
}

func newStubManufacturerRepo() *stubManufacturerRepo {
	return &stubManufacturerRepo{ms: make(map[uuid.UUID]model.Manufacturer)}
}

func (r *stubManufacturerRepo) Create(_ context.Context, m *model.Manufacturer) error {
	r.ms[m.ID] = *m
	return nil
}

func (r *stubManufacturerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Manufacturer, error) {
	m, ok := r.ms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *stubManufacturerRepo) List(_ context.Context) ([]model.Manufacturer, error) {
	var out []model.Manufacturer
	for _, m := range r.ms {
		out = append(out, m)
	}
	return out, nil
}

func (r *stubManufacturerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ms)), nil
}

// ── Queue and notifier doubles ───────────────────────────────────────────────

var _ TaskQueue = (*stubQueue)(nil)

type stubQueue struct {
	mu     sync.Mutex
	sweeps int
	jobs   []dto.NotificationJob
	err    error
}

func (q *stubQueue) EnqueueAlertSweep(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.sweeps++
	return nil
}

func (q *stubQueue) EnqueueNotification(_ context.Context, job dto.NotificationJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type spyNotifier struct {
	dispatched []model.Alert
	ctxErrs    []error
}

func (n *spyNotifier) Dispatch(ctx context.Context, a *model.Alert) {
	n.dispatched = append(n.dispatched, *a)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
}

var errStoreDown = errors.New("store unavailable")

// ── Fixtures ─────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// seedLine stores a batch in status and an inventory line for it.
func seedLine(batches *stubBatchRepo, inv *stubInventoryRepo, status model.BatchStatus, current, initial int, expiry time.Time) (model.Batch, model.InventoryLine) {
	b := model.Batch{
		ID:            uuid.New(),
		BatchNumber:   "B-" + uuid.NewString()[:8],
		ProductName:   "Amoxicillin 500mg",
		ProductType:   "drug",
		ExpiryDate:    expiry,
		Quantity:      initial,
		Status:        status,
		QualityStatus: model.QualityPending,
	}
	_ = batches.Create(context.Background(), &b)
	l := model.InventoryLine{
		ID:           uuid.New(),
		BatchID:      b.ID,
		BatchNumber:  b.BatchNumber,
		ProductName:  b.ProductName,
		CurrentStock: current,
		InitialStock: initial,
		ExpiryDate:   expiry,
		Location:     "Pharmacy A",
	}
	inv.put(l)
	return b, l
}
