package httpinterface_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	httpinterface "github.com/blind-mentorship/mentorship-wallet/internal/interfaces/http"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAddress = "mn_addr_undeployed1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0s3hrkgp"
	testToken   = "0202020202020202020202020202020202020202020202020202020202020202"
	testTx      = "6d69646e696768742d7478"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type response struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func doRequest(
	t *testing.T, svc application.WalletService, method, path string, body interface{},
) (int, response) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	httpinterface.NewRouter(svc).ServeHTTP(w, req)

	var res response
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	}
	return w.Code, res
}

func TestGetInfo(t *testing.T) {
	svc := &mockWalletService{}
	svc.On("Info", mock.Anything).Return(&application.WalletInfo{
		NetworkID: "undeployed",
		Address:   testAddress,
		PublicKey: "03aa",
		IsSynced:  true,
	}, nil)

	code, res := doRequest(t, svc, http.MethodGet, "/v1/info", nil)
	require.Equal(t, http.StatusOK, code)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Data, &info))
	require.Equal(t, "undeployed", info["network_id"])
	require.Equal(t, testAddress, info["address"])
	require.Equal(t, true, info["is_synced"])
}

func TestGetBalance(t *testing.T) {
	t.Run("single token", func(t *testing.T) {
		svc := &mockWalletService{}
		svc.On("Balance", mock.Anything, testToken).Return(uint64(1500), nil)

		code, res := doRequest(
			t, svc, http.MethodGet, "/v1/balance?token_type="+testToken, nil,
		)
		require.Equal(t, http.StatusOK, code)

		var balance map[string]interface{}
		require.NoError(t, json.Unmarshal(res.Data, &balance))
		require.Equal(t, testToken, balance["token_type"])
		require.Equal(t, "1500", balance["balance"])
		svc.AssertNotCalled(t, "Balances", mock.Anything)
	})

	t.Run("all tokens", func(t *testing.T) {
		svc := &mockWalletService{}
		svc.On("Balances", mock.Anything).Return(map[string]uint64{
			testToken: 18446744073709551615,
		}, nil)

		code, res := doRequest(t, svc, http.MethodGet, "/v1/balance", nil)
		require.Equal(t, http.StatusOK, code)

		var balance struct {
			Balances map[string]string `json:"balances"`
		}
		require.NoError(t, json.Unmarshal(res.Data, &balance))
		require.Equal(t, "18446744073709551615", balance.Balances[testToken])
	})

	t.Run("session not started", func(t *testing.T) {
		svc := &mockWalletService{}
		svc.On("Balances", mock.Anything).Return(
			nil, application.ErrSessionNotStarted,
		)

		code, res := doRequest(t, svc, http.MethodGet, "/v1/balance", nil)
		require.Equal(t, http.StatusServiceUnavailable, code)
		require.Equal(t, application.ErrSessionNotStarted.Error(), res.Error)
	})
}

func TestGetAddresses(t *testing.T) {
	svc := &mockWalletService{}
	svc.On("Address", mock.Anything).Return(testAddress, nil)

	code, res := doRequest(t, svc, http.MethodGet, "/v1/addresses", nil)
	require.Equal(t, http.StatusOK, code)

	var addresses struct {
		Addresses []string `json:"addresses"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &addresses))
	require.Equal(t, []string{testAddress}, addresses.Addresses)
}

func TestGetShieldedAddresses(t *testing.T) {
	svc := &mockWalletService{}
	svc.On("ShieldedAddresses", mock.Anything).Return(&application.ShieldedAddresses{
		CoinPublicKey:       strings.Repeat("0a", 32),
		EncryptionPublicKey: strings.Repeat("0b", 32),
	}, nil)

	code, res := doRequest(t, svc, http.MethodGet, "/v1/shielded-addresses", nil)
	require.Equal(t, http.StatusOK, code)

	var addresses map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &addresses))
	require.Equal(t, map[string]string{
		"shieldedCoinPublicKey":       strings.Repeat("0a", 32),
		"shieldedEncryptionPublicKey": strings.Repeat("0b", 32),
	}, addresses)

	svc = &mockWalletService{}
	svc.On("ShieldedAddresses", mock.Anything).
		Return(nil, application.ErrSessionNotStarted)
	code, res = doRequest(t, svc, http.MethodGet, "/v1/shielded-addresses", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.NotEmpty(t, res.Error)
}

func TestTransfer(t *testing.T) {
	receivers := []application.TransferRequest{
		{Address: testAddress, Amount: 1000, TokenType: testToken},
	}
	transfer := &domain.Transfer{
		Id:   "c5f1c1e5-0000-4000-8000-000000000000",
		Kind: domain.TransferKindSend,
		Outputs: []domain.TransferOutput{
			{Address: testAddress, Amount: 1000, TokenType: testToken},
		},
		Status:          domain.TransferStatus{Code: domain.TransferStatusCodeSubmitted},
		PrimarySegments: []uint16{1},
		TxId:            "aa",
		TxHash:          "bb",
	}

	svc := &mockWalletService{}
	svc.On("Transfer", mock.Anything, receivers).Return(transfer, nil)

	code, res := doRequest(t, svc, http.MethodPost, "/v1/transfer", map[string]interface{}{
		"receivers": []map[string]string{
			{"address": testAddress, "amount": "1000", "token_type": testToken},
		},
	})
	require.Equal(t, http.StatusOK, code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Data, &got))
	require.Equal(t, transfer.Id, got["id"])
	require.Equal(t, "Submitted", got["status"])
	require.Equal(t, "bb", got["tx_hash"])
}

func TestFailingTransfer(t *testing.T) {
	validBody := map[string]interface{}{
		"receivers": []map[string]string{
			{"address": testAddress, "amount": "1000"},
		},
	}

	t.Run("invalid request", func(t *testing.T) {
		tests := []struct {
			name string
			body interface{}
		}{
			{"missing receivers", map[string]interface{}{}},
			{"empty receivers", map[string]interface{}{"receivers": []interface{}{}}},
			{
				"missing address",
				map[string]interface{}{
					"receivers": []map[string]string{{"amount": "10"}},
				},
			},
			{
				"non numeric amount",
				map[string]interface{}{
					"receivers": []map[string]string{
						{"address": testAddress, "amount": "ten"},
					},
				},
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				svc := &mockWalletService{}
				code, res := doRequest(t, svc, http.MethodPost, "/v1/transfer", tt.body)
				require.Equal(t, http.StatusBadRequest, code)
				require.NotEmpty(t, res.Error)
				svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("service errors", func(t *testing.T) {
		tests := []struct {
			name         string
			err          error
			expectedCode int
		}{
			{
				"invalid address",
				fmt.Errorf("receiver 0: %w", keystore.ErrInvalidAddress),
				http.StatusBadRequest,
			},
			{
				"network mismatch",
				keystore.ErrNetworkMismatch,
				http.StatusBadRequest,
			},
			{
				"outputs total overflows",
				fmt.Errorf("%w: token 00", domain.ErrTransferAmountOverflow),
				http.StatusBadRequest,
			},
			{
				"insufficient funds",
				application.ErrInsufficientFunds,
				http.StatusUnprocessableEntity,
			},
			{
				"submission rejected",
				fmt.Errorf("%w: invalid nonce", application.ErrSubmissionRejected),
				http.StatusUnprocessableEntity,
			},
			{
				"session not started",
				application.ErrSessionNotStarted,
				http.StatusServiceUnavailable,
			},
			{
				"unexpected",
				fmt.Errorf("indexer unreachable"),
				http.StatusInternalServerError,
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				svc := &mockWalletService{}
				svc.On("Transfer", mock.Anything, mock.Anything).Return(nil, tt.err)

				code, res := doRequest(t, svc, http.MethodPost, "/v1/transfer", validBody)
				require.Equal(t, tt.expectedCode, code)
				require.Equal(t, tt.err.Error(), res.Error)
			})
		}
	})
}

func TestBalanceAndSubmitTransaction(t *testing.T) {
	svc := &mockWalletService{}
	svc.On("BalanceTransaction", mock.Anything, testTx).Return("ffee", nil)
	svc.On("SubmitTransaction", mock.Anything, "ffee").Return("0a0b", nil)

	code, res := doRequest(
		t, svc, http.MethodPost, "/v1/balance-transaction",
		map[string]string{"tx": testTx},
	)
	require.Equal(t, http.StatusOK, code)

	var balanced map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &balanced))
	require.Equal(t, "ffee", balanced["tx"])

	code, res = doRequest(
		t, svc, http.MethodPost, "/v1/submit-transaction",
		map[string]string{"tx": balanced["tx"]},
	)
	require.Equal(t, http.StatusOK, code)

	var submitted map[string]string
	require.NoError(t, json.Unmarshal(res.Data, &submitted))
	require.Equal(t, "0a0b", submitted["tx_hash"])
}

func TestFailingBalanceTransaction(t *testing.T) {
	t.Run("non hex tx", func(t *testing.T) {
		svc := &mockWalletService{}
		code, _ := doRequest(
			t, svc, http.MethodPost, "/v1/balance-transaction",
			map[string]string{"tx": "not-hex"},
		)
		require.Equal(t, http.StatusBadRequest, code)
		svc.AssertNotCalled(t, "BalanceTransaction", mock.Anything, mock.Anything)
	})

	t.Run("unsigned tx", func(t *testing.T) {
		svc := &mockWalletService{}
		svc.On("SubmitTransaction", mock.Anything, testTx).Return(
			"", application.ErrFinalization,
		)

		code, res := doRequest(
			t, svc, http.MethodPost, "/v1/submit-transaction",
			map[string]string{"tx": testTx},
		)
		require.Equal(t, http.StatusUnprocessableEntity, code)
		require.Equal(t, application.ErrFinalization.Error(), res.Error)
	})
}

func TestListTransfers(t *testing.T) {
	svc := &mockWalletService{}
	svc.On("ListTransfers", mock.Anything).Return([]*domain.Transfer{
		{
			Id:            "b",
			Kind:          domain.TransferKindBalance,
			Status:        domain.TransferStatus{Code: domain.TransferStatusCodeRecipe, Failed: true},
			FailureReason: "wallet engine returned no recipe",
		},
		{
			Id:     "a",
			Kind:   domain.TransferKindSend,
			Status: domain.TransferStatus{Code: domain.TransferStatusCodeSubmitted},
		},
	}, nil)

	code, res := doRequest(t, svc, http.MethodGet, "/v1/transfers", nil)
	require.Equal(t, http.StatusOK, code)

	var transfers []map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Data, &transfers))
	require.Len(t, transfers, 2)
	require.Equal(t, "b", transfers[0]["id"])
	require.Equal(t, "RecipeFailed", transfers[0]["status"])
	require.Equal(t, "Submitted", transfers[1]["status"])
}

func TestMetrics(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	httpinterface.NewRouter(&mockWalletService{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewService(t *testing.T) {
	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:      9932,
		WalletSvc: &mockWalletService{},
	})
	require.NoError(t, err)
	require.NotNil(t, svc)

	_, err = httpinterface.NewService(httpinterface.ServiceOpts{Port: 9932})
	require.ErrorIs(t, err, httpinterface.ErrNullWalletService)

	_, err = httpinterface.NewService(httpinterface.ServiceOpts{
		Port:      0,
		WalletSvc: &mockWalletService{},
	})
	require.ErrorIs(t, err, httpinterface.ErrInvalidPort)
}
