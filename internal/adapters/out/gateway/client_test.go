package gateway_test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"mekina/internal/adapters/out/gateway"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/transaction/verify/{txRef}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.PathValue("txRef") {
		case "mk-paid":
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"mk-paid","status":"success"}}`))
		case "mk-waiting":
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"mk-waiting","status":"pending"}}`))
		case "mk-declined":
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"mk-declined","status":"FAILED"}}`))
		case "mk-empty":
			_, _ = w.Write([]byte(`{"status":"failed","message":"Invalid transaction","data":null}`))
		case "mk-broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"failed","message":"not found"}`))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CheckStatus(t *testing.T) {
	srv := newProvider(t)
	client := gateway.NewClient(gateway.Config{BaseURL: srv.URL + "/", Secret: "sk-test"})

	tests := []struct {
		txRef   string
		want    payment.GatewayResult
		wantErr error
	}{
		{txRef: "mk-paid", want: payment.GatewaySuccess},
		{txRef: "mk-waiting", want: payment.GatewayPending},
		{txRef: "mk-declined", want: payment.GatewayFailed},
		{txRef: "mk-missing", want: payment.GatewayPending, wantErr: ports.ErrUnknownTransaction},
		{txRef: "mk-empty", want: payment.GatewayPending, wantErr: ports.ErrUnknownTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.txRef, func(t *testing.T) {
			got, err := client.CheckStatus(t.Context(), tt.txRef)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("server errors are transient", func(t *testing.T) {
		_, err := client.CheckStatus(t.Context(), "mk-broken")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ports.ErrUnknownTransaction)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","tx_ref":"mk-paid"}`)
	valid := hex.EncodeToString(gateway.Sign(body, "whsec"))

	assert.NoError(t, gateway.VerifySignature(body, valid, "whsec"))
	assert.ErrorIs(t, gateway.VerifySignature(body, "", "whsec"), gateway.ErrMissingSignature)
	assert.ErrorIs(t, gateway.VerifySignature(body, "zz", "whsec"), gateway.ErrInvalidSignature)
	assert.ErrorIs(t, gateway.VerifySignature(body, valid, "other"), gateway.ErrInvalidSignature)
}
