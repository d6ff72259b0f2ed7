package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mintdao/issuer/core"
)

const testAuthority = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"

type stubIssuer struct {
	initialize    func(caller string, input core.InitializeInput) (string, error)
	getAsset      func(handle string) (*core.Asset, error)
	mint          func(caller, handle, to string, amount uint64) error
	burn          func(caller, handle, from string, amount uint64) error
	forceTransfer func(caller, handle, from, to string, amount uint64) error
	setFrozen     func(caller, handle, account string, frozen bool) error
}

func (s *stubIssuer) Authority() string { return testAuthority }

func (s *stubIssuer) ResolveHandle(symbol string) string {
	return core.DeriveHandle(testAuthority, symbol)
}

func (s *stubIssuer) Initialize(_ context.Context, caller string, input core.InitializeInput) (string, error) {
	return s.initialize(caller, input)
}

func (s *stubIssuer) GetAsset(_ context.Context, handle string) (*core.Asset, error) {
	return s.getAsset(handle)
}

func (s *stubIssuer) GetName(_ context.Context, handle string) (string, error) {
	asset, err := s.getAsset(handle)
	if err != nil {
		return "", err
	}

	return asset.Name, nil
}

func (s *stubIssuer) Mint(_ context.Context, caller, handle, to string, amount uint64) error {
	return s.mint(caller, handle, to, amount)
}

func (s *stubIssuer) Burn(_ context.Context, caller, handle, from string, amount uint64) error {
	return s.burn(caller, handle, from, amount)
}

func (s *stubIssuer) ForceTransfer(_ context.Context, caller, handle, from, to string, amount uint64) error {
	return s.forceTransfer(caller, handle, from, to, amount)
}

func (s *stubIssuer) FreezeAccount(_ context.Context, caller, handle, account string) error {
	return s.setFrozen(caller, handle, account, true)
}

func (s *stubIssuer) UnfreezeAccount(_ context.Context, caller, handle, account string) error {
	return s.setFrozen(caller, handle, account, false)
}

type stubLedger struct {
	core.LedgerStore

	findEntry func(handle, account string) (*core.BalanceEntry, error)
	transfer  func(handle, from, to string, amount uint64) error
}

func (l *stubLedger) FindEntry(_ context.Context, handle, account string) (*core.BalanceEntry, error) {
	return l.findEntry(handle, account)
}

func (l *stubLedger) Transfer(_ context.Context, handle, from, to string, amount uint64) error {
	return l.transfer(handle, from, to, amount)
}

func newTestServer(issuerz core.IssuerService, ledger core.LedgerStore) *httptest.Server {
	svr := New(issuerz, ledger, slog.Default())
	return httptest.NewServer(svr.Handler())
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}

	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMintEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mintErr    error
		wantStatus int
	}{
		{
			name:       "ok",
			body:       `{"caller":"` + testAuthority + `","to":"acc","amount":"100"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "permission denied",
			body:       `{"caller":"someone-else","to":"acc","amount":"100"}`,
			mintErr:    core.ErrPermissionDenied,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "overflow",
			body:       `{"caller":"` + testAuthority + `","to":"acc","amount":"100"}`,
			mintErr:    core.ErrSupplyOverflow,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "bad amount",
			body:       `{"caller":"` + testAuthority + `","to":"acc","amount":"-5"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not initialized",
			body:       `{"caller":"` + testAuthority + `","to":"acc","amount":"1"}`,
			mintErr:    core.ErrNotInitialized,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuerz := &stubIssuer{
				mint: func(caller, handle, to string, amount uint64) error {
					return tt.mintErr
				},
			}

			ts := newTestServer(issuerz, &stubLedger{})
			defer ts.Close()

			resp := post(t, ts.URL+"/assets/CAT/mint", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestInitializeEndpoint(t *testing.T) {
	issuerz := &stubIssuer{
		initialize: func(caller string, input core.InitializeInput) (string, error) {
			if input.Symbol == "CAT" {
				return core.DeriveHandle(testAuthority, "CAT"), nil
			}

			return "", core.ErrAlreadyInitialized
		},
	}

	ts := newTestServer(issuerz, &stubLedger{})
	defer ts.Close()

	resp := post(t, ts.URL+"/assets", `{"caller":"`+testAuthority+`","symbol":"CAT","name":"Cat Coin","decimals":8}`)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = post(t, ts.URL+"/assets", `{"caller":"`+testAuthority+`","symbol":"DOG"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	resp = post(t, ts.URL+"/assets", `{"caller":"`+testAuthority+`"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing symbol status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestInitializeEndpointConcurrentCallers(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	issuerz := &stubIssuer{
		initialize: func(caller string, input core.InitializeInput) (string, error) {
			if caller != testAuthority {
				return "", core.ErrPermissionDenied
			}

			close(entered)
			<-release
			return core.DeriveHandle(testAuthority, input.Symbol), nil
		},
	}

	ts := newTestServer(issuerz, &stubLedger{})
	defer ts.Close()

	ownerStatus := make(chan int, 1)
	go func() {
		resp, err := http.Post(ts.URL+"/assets", "application/json",
			strings.NewReader(`{"caller":"`+testAuthority+`","symbol":"CAT"}`))
		if err != nil {
			ownerStatus <- 0
			return
		}

		resp.Body.Close()
		ownerStatus <- resp.StatusCode
	}()

	// with the owner's initialize still in flight, a non-owner submitting
	// the same symbol must get its own denial, not the owner's result.
	<-entered
	resp := post(t, ts.URL+"/assets", `{"caller":"someone-else","symbol":"CAT"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-owner status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}

	close(release)
	if got := <-ownerStatus; got != http.StatusCreated {
		t.Errorf("owner status = %d, want %d", got, http.StatusCreated)
	}
}

func TestTransferEndpointFrozen(t *testing.T) {
	issuerz := &stubIssuer{
		getAsset: func(handle string) (*core.Asset, error) {
			return &core.Asset{Handle: handle, Symbol: "CAT"}, nil
		},
	}

	ledger := &stubLedger{
		transfer: func(handle, from, to string, amount uint64) error {
			return core.ErrAccountFrozen
		},
	}

	ts := newTestServer(issuerz, ledger)
	defer ts.Close()

	resp := post(t, ts.URL+"/assets/CAT/transfer", `{"from":"a","to":"b","amount":"5"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestGetAccountEndpoint(t *testing.T) {
	issuerz := &stubIssuer{
		getAsset: func(handle string) (*core.Asset, error) {
			return &core.Asset{Handle: handle, Symbol: "CAT", Decimals: 2}, nil
		},
	}

	ledger := &stubLedger{
		findEntry: func(handle, account string) (*core.BalanceEntry, error) {
			return &core.BalanceEntry{Handle: handle, Account: account, Amount: 150}, nil
		},
	}

	ts := newTestServer(issuerz, ledger)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/assets/CAT/accounts/acc")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
