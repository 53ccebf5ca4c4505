package payment_test

import (
	"strings"
	"testing"

	"mekina/internal/core/domain/model/payment"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name         string
		method       payment.Method
		txRef        string
		wantStatus   payment.Status
		wantApproval payment.ApprovalStatus
		wantErr      error
	}{
		{
			name:         "telebirr starts pending without approval",
			method:       payment.Telebirr,
			txRef:        "mk-abc",
			wantStatus:   payment.Pending,
			wantApproval: payment.ApprovalNotRequired,
		},
		{
			name:    "chapa requires a transaction reference",
			method:  payment.Chapa,
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name:         "bank transfer waits for approval",
			method:       payment.BankTransfer,
			wantStatus:   payment.Pending,
			wantApproval: payment.ApprovalPending,
		},
		{
			name:         "cash on delivery is unpaid",
			method:       payment.CashOnDelivery,
			wantStatus:   payment.Unpaid,
			wantApproval: payment.ApprovalNotRequired,
		},
		{
			name:    "unknown method",
			method:  payment.UnknownMethod,
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := payment.NewRecord(tt.method, tt.txRef, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, r.Status())
			assert.Equal(t, tt.wantApproval, r.ApprovalStatus())
		})
	}
}

func TestRecord_Approval(t *testing.T) {
	manual, err := payment.NewRecord(payment.CBE, "", "receipt-1")
	require.NoError(t, err)

	t.Run("should mark the payment paid on approve", func(t *testing.T) {
		approved, err := manual.Approve()

		require.NoError(t, err)
		assert.Equal(t, payment.Approved, approved.ApprovalStatus())
		assert.Equal(t, payment.Paid, approved.Status())
		assert.Equal(t, payment.ApprovalPending, manual.ApprovalStatus())
	})

	t.Run("should leave the payment unpaid on reject", func(t *testing.T) {
		rejected, err := manual.Reject()

		require.NoError(t, err)
		assert.Equal(t, payment.Rejected, rejected.ApprovalStatus())
		assert.Equal(t, payment.Unpaid, rejected.Status())
	})

	t.Run("should not decide twice", func(t *testing.T) {
		approved, _ := manual.Approve()

		_, err := approved.Reject()
		assert.ErrorIs(t, err, payment.ErrAlreadyResolved)

		_, err = approved.Approve()
		assert.ErrorIs(t, err, payment.ErrAlreadyResolved)
	})

	t.Run("should refuse approval for gateway payments", func(t *testing.T) {
		gw, _ := payment.NewRecord(payment.Chapa, "mk-1", "")

		_, err := gw.Approve()
		assert.ErrorIs(t, err, payment.ErrNotManual)
	})
}

func TestRecord_ApplyGatewayResult(t *testing.T) {
	gw, err := payment.NewRecord(payment.Telebirr, "mk-1", "")
	require.NoError(t, err)

	pending, err := gw.ApplyGatewayResult(payment.GatewayPending)
	require.NoError(t, err)
	assert.True(t, pending.AwaitsGateway())

	paid, err := gw.ApplyGatewayResult(payment.GatewaySuccess)
	require.NoError(t, err)
	assert.Equal(t, payment.Paid, paid.Status())
	assert.False(t, paid.AwaitsGateway())

	failed, err := gw.ApplyGatewayResult(payment.GatewayFailed)
	require.NoError(t, err)
	assert.Equal(t, payment.Failed, failed.Status())

	_, err = paid.ApplyGatewayResult(payment.GatewayFailed)
	assert.ErrorIs(t, err, payment.ErrAlreadyResolved)

	cod, _ := payment.NewRecord(payment.CashOnDelivery, "", "")
	_, err = cod.ApplyGatewayResult(payment.GatewaySuccess)
	assert.ErrorIs(t, err, payment.ErrNotGateway)
}

func TestParsers(t *testing.T) {
	m, err := payment.ParseMethod("Bank_Transfer")
	require.NoError(t, err)
	assert.Equal(t, payment.BankTransfer, m)

	_, err = payment.ParseMethod("paypal")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	r, err := payment.ParseGatewayResult("success")
	require.NoError(t, err)
	assert.True(t, r.IsFinal())

	s, err := payment.ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, payment.Paid, s)

	a, err := payment.ParseApprovalStatus("not_required")
	require.NoError(t, err)
	assert.Equal(t, payment.ApprovalNotRequired, a)
}

func TestNewTransactionRef(t *testing.T) {
	a := payment.NewTransactionRef()
	b := payment.NewTransactionRef()

	assert.True(t, strings.HasPrefix(a, "mk-"))
	assert.NotEqual(t, a, b)
}
