//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Lahari-104/Mediguard/internal/config"
	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/infra"
	"github.com/Lahari-104/Mediguard/internal/repository"
	"github.com/Lahari-104/Mediguard/internal/router"
	"github.com/Lahari-104/Mediguard/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type outbox struct {
	mu   sync.Mutex
	sent []string // recipient addresses
}

func (o *outbox) SendAlert(to, _, _ string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, to)
	return nil
}

func (o *outbox) recipients() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.sent...)
}

type testEnv struct {
	server *httptest.Server
	mail   *outbox
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func (e *testEnv) register(t *testing.T, email, role string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/v1/auth/register", map[string]string{
		"email": email, "name": "E2E " + role, "password": "correct-horse", "role": role,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body dto.LoginResponse
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func (e *testEnv) alerts(t *testing.T, token string) map[string]int {
	t.Helper()
	resp := e.do(t, http.MethodGet, "/v1/alerts", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.AlertResponse
	decodeJSON(t, resp, &list)
	counts := map[string]int{}
	for _, a := range list {
		counts[a.AlertType]++
	}
	return counts
}

// ── Setup ────────────────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("mediguard_test"),
		tcPostgres.WithUsername("mediguard"),
		tcPostgres.WithPassword("mediguard"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     2,
		CORSOrigins:        "*",
		ExpiryWarningDays:  30,
		LowStockRatio:      "0.10",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	mail := &outbox{}
	dispatcher := worker.NewDispatcher(rdb)
	services := router.NewServices(cfg, db, rdb, dispatcher)
	worker.StartWorkerPool(workerCtx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		worker.JobAlertSweep:   worker.NewSweepWorker(services.Alerts),
		worker.JobNotification: worker.NewNotificationWorker(mail, infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp")), repository.NewAlertRepository(db), worker.NewRedisDLQ(rdb)),
	})

	srv := httptest.NewServer(router.New(cfg, services, router.HealthChecks(db, rdb)))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, mail: mail}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_BatchLifecycleAndAlerts(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.register(t, "admin@e2e.test", "admin")
	staff := env.register(t, "nurse@e2e.test", "staff")

	resp := env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 1. Manufacturer and a batch expiring in ten days
	resp = env.do(t, http.MethodPost, "/v1/manufacturers", map[string]string{
		"name": "Acme Pharma", "contact_email": "qa@acme.test", "contact_phone": "555-0100",
		"address": "1 Lab Way", "license_number": "LIC-001",
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var m dto.ManufacturerResponse
	decodeJSON(t, resp, &m)

	now := time.Now().UTC()
	resp = env.do(t, http.MethodPost, "/v1/batches", map[string]any{
		"batch_number": "AMX-2026-01", "product_name": "Amoxicillin 500mg", "product_type": "drug",
		"manufacturer_id": m.ID, "production_date": now.AddDate(0, -6, 0), "expiry_date": now.AddDate(0, 0, 10),
		"quantity": 100,
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var batch dto.BatchResponse
	decodeJSON(t, resp, &batch)
	assert.Equal(t, "in_production", batch.Status)

	// 2. Stock it
	resp = env.do(t, http.MethodPost, "/v1/inventory", map[string]any{
		"batch_id": batch.ID, "location": "Pharmacy A", "quantity": 100,
	}, staff)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var line dto.InventoryLineResponse
	decodeJSON(t, resp, &line)

	// 3. Ledger: consume to 5, then an overdraw is rejected and leaves 5
	resp = env.do(t, http.MethodPut, "/v1/inventory/"+line.ID+"/stock", map[string]int{"delta": -95}, staff)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adj dto.AdjustStockResponse
	decodeJSON(t, resp, &adj)
	assert.Equal(t, 5, adj.NewStock)

	resp = env.do(t, http.MethodPut, "/v1/inventory/"+line.ID+"/stock", map[string]int{"delta": -10}, staff)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 4. On-demand sweep raises expiry + low stock once
	resp = env.do(t, http.MethodPost, "/v1/alerts/check", nil, staff)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	require.Eventually(t, func() bool {
		c := env.alerts(t, admin)
		return c["expiry_warning"] == 1 && c["low_stock"] == 1
	}, 15*time.Second, 200*time.Millisecond)

	resp = env.do(t, http.MethodPost, "/v1/alerts/check", nil, admin)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()
	time.Sleep(time.Second)
	c := env.alerts(t, admin)
	assert.Equal(t, 1, c["expiry_warning"])
	assert.Equal(t, 1, c["low_stock"])

	// 5. Failed quality result alerts once and emails staff only
	for i := 0; i < 2; i++ {
		resp = env.do(t, http.MethodPost, "/v1/quality-reports", map[string]any{
			"batch_id": batch.ID, "test_date": now, "test_type": "sterility",
			"result": "failed", "tested_by": "QA Lab",
		}, staff)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, 1, env.alerts(t, admin)["quality_issue"])
	require.Eventually(t, func() bool {
		return len(env.mail.recipients()) == 1
	}, 10*time.Second, 100*time.Millisecond)
	assert.Equal(t, []string{"nurse@e2e.test"}, env.mail.recipients())

	// 6. Traceability carries the failed verdict
	resp = env.do(t, http.MethodGet, "/v1/dashboard/batch-traceability/"+batch.ID, nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trace dto.TraceabilityResponse
	decodeJSON(t, resp, &trace)
	assert.Equal(t, "failed", trace.Batch.QualityStatus)
	assert.Len(t, trace.QualityReports, 2)
}

func TestE2E_ConcurrentAdjustmentsNeverOverdraw(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.register(t, "admin@e2e.test", "admin")

	resp := env.do(t, http.MethodPost, "/v1/manufacturers", map[string]string{
		"name": "Beta Labs", "contact_email": "ops@beta.test", "contact_phone": "555-0199",
		"address": "2 Lab Way", "license_number": "LIC-002",
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var m dto.ManufacturerResponse
	decodeJSON(t, resp, &m)

	now := time.Now().UTC()
	resp = env.do(t, http.MethodPost, "/v1/batches", map[string]any{
		"batch_number": "SAL-7", "product_name": "Saline 0.9%", "product_type": "consumable",
		"manufacturer_id": m.ID, "production_date": now.AddDate(0, -1, 0), "expiry_date": now.AddDate(2, 0, 0),
		"quantity": 40,
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var batch dto.BatchResponse
	decodeJSON(t, resp, &batch)

	resp = env.do(t, http.MethodPost, "/v1/inventory", map[string]any{
		"batch_id": batch.ID, "location": "Ward 3", "quantity": 40,
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var line dto.InventoryLineResponse
	decodeJSON(t, resp, &line)

	var (
		wg               sync.WaitGroup
		mu               sync.Mutex
		applied, refused int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := env.do(t, http.MethodPut, "/v1/inventory/"+line.ID+"/stock", map[string]int{"delta": -1}, admin)
			r.Body.Close()
			mu.Lock()
			defer mu.Unlock()
			switch r.StatusCode {
			case http.StatusOK:
				applied++
			case http.StatusConflict:
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 40, applied)
	assert.Equal(t, 10, refused)

	resp = env.do(t, http.MethodGet, "/v1/batches/"+batch.ID, nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var after dto.BatchResponse
	decodeJSON(t, resp, &after)
	assert.Equal(t, "depleted", after.Status)
}
