package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "campus-access-gateway/internal/adapter/http/handler"
	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/service"
	"campus-access-gateway/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the real HTTP layer, handlers, and services over the
// in-memory store. Rate limiting is left disabled; it has its own tests.
type testApp struct {
	server *httptest.Server
	store  *campusStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newCampusStore()
	identityRepo := &inMemoryIdentityRepo{store: store}
	policyRepo := &inMemoryPolicyRepo{store: store}
	walletRepo := &inMemoryWalletRepo{store: store}
	txRepo := &inMemoryTransactionRepo{store: store}
	transactor := &inMemoryTransactor{}

	log := logger.New("error", false)
	policySvc := service.NewPolicyService(policyRepo, domain.DefaultPolicySet(), log)
	tapSvc := service.NewTapService(identityRepo, policySvc, walletRepo, txRepo, transactor, log)
	reportingSvc := service.NewReportingService(identityRepo, txRepo, log)
	adminSvc := service.NewAdminService(walletRepo, txRepo, transactor, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TapSvc:       tapSvc,
		PolicySvc:    policySvc,
		ReportingSvc: reportingSvc,
		AdminSvc:     adminSvc,
		Logger:       log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, store: store}
}

func (a *testApp) tap(t *testing.T, cardUID, svc string) map[string]interface{} {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"card_uid": cardUID, "service": svc})
	resp, err := http.Post(a.server.URL+"/api/v1/tap", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope["data"].(map[string]interface{})
}

func (a *testApp) getJSON(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestIntegration_PaidTapDrainsBalanceExactly(t *testing.T) {
	app := newTestApp(t)

	// RFID_003 starts at 200.00; mess costs 50.00. Four taps succeed, the
	// fifth is denied by the evaluator with the balance untouched.
	for i := 0; i < 4; i++ {
		data := app.tap(t, "RFID_003", "mess")
		assert.Equal(t, true, data["success"], "tap %d", i+1)
		assert.Equal(t, "Payment Approved", data["action"])
	}

	data := app.tap(t, "RFID_003", "mess")
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "Insufficient Balance", data["action"])
	assert.Equal(t, 0.0, data["balance_remaining"])

	// Exactly four ledger entries, 50.00 each
	status, envelope := app.getJSON(t, "/api/v1/transactions")
	require.Equal(t, http.StatusOK, status)
	txns := envelope["data"].([]interface{})
	require.Len(t, txns, 4)
	for _, raw := range txns {
		entry := raw.(map[string]interface{})
		assert.Equal(t, 50.0, entry["amount"])
		assert.Equal(t, "Vaibhav Katariya", entry["student"])
	}
}

func TestIntegration_FreeTapRecordsZeroAmount(t *testing.T) {
	app := newTestApp(t)

	data := app.tap(t, "RFID_001", "attendance")
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "Access Granted", data["action"])
	assert.Equal(t, 500.0, data["balance_remaining"])
	_, hasDeduction := data["amount_deducted"]
	assert.False(t, hasDeduction)

	status, envelope := app.getJSON(t, "/api/v1/transactions")
	require.Equal(t, http.StatusOK, status)
	txns := envelope["data"].([]interface{})
	require.Len(t, txns, 1)
	assert.Equal(t, 0.0, txns[0].(map[string]interface{})["amount"])
}

func TestIntegration_UnknownCardAndService(t *testing.T) {
	app := newTestApp(t)

	data := app.tap(t, "RFID_999", "mess")
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "Invalid Card - Identity Not Found", data["action"])

	data = app.tap(t, "RFID_001", "skydiving")
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "Unknown service: skydiving", data["action"])

	// Neither produced a ledger entry
	status, envelope := app.getJSON(t, "/api/v1/transactions")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, envelope["data"])
}

func TestIntegration_PolicyStoreOutageUsesFallback(t *testing.T) {
	app := newTestApp(t)

	app.store.mu.Lock()
	app.store.policyErr = errors.New("policy store down")
	app.store.mu.Unlock()

	// Taps still authorize against the default policy set
	data := app.tap(t, "RFID_001", "mess")
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "Payment Approved", data["action"])
	assert.Equal(t, 450.0, data["balance_remaining"])

	// Listing degrades to the default set too
	status, envelope := app.getJSON(t, "/api/v1/policies")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, envelope["data"].([]interface{}), 4)
}

func TestIntegration_IdentityEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, envelope := app.getJSON(t, "/api/v1/identities")
	require.Equal(t, http.StatusOK, status)
	identities := envelope["data"].([]interface{})
	require.Len(t, identities, 4)

	status, envelope = app.getJSON(t, "/api/v1/identities/RFID_002")
	require.Equal(t, http.StatusOK, status)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Mohammad Ali", data["name"])
	assert.Equal(t, 300.0, data["wallet_balance"])

	status, envelope = app.getJSON(t, "/api/v1/identities/RFID_404")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "GATE_002", envelope["error_code"])
}

func TestIntegration_ResetDemoRestoresState(t *testing.T) {
	app := newTestApp(t)

	// Spend some money and log some taps
	app.tap(t, "RFID_001", "mess")
	app.tap(t, "RFID_002", "transport")
	app.tap(t, "RFID_003", "attendance")

	resp, err := http.Post(app.server.URL+"/api/v1/admin/reset-demo", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Balances are back to seed values
	status, envelope := app.getJSON(t, "/api/v1/identities/RFID_001")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 500.0, envelope["data"].(map[string]interface{})["wallet_balance"])

	// Ledger is empty
	status, envelope = app.getJSON(t, "/api/v1/transactions")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, envelope["data"])
}
