package commands_test

import (
	"errors"
	"testing"

	"mekina/internal/cache"
	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyPaymentResultCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)

	t.Run("should apply the first delivery of an event", func(t *testing.T) {
		o := f.newOrder(t, payment.Chapa, kernel.Vehicle)
		txRef := o.Payment().TransactionRef()
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, "payment-callback:evt-1", commands.CallbackDedupTTL).Return(true, nil).Once()

		reader, reads := new(MockUoW), new(MockOrderRepository)
		reader.On("OrderRepository").Return(reads)
		reads.On("GetByTransactionRef", mock.Anything, txRef).Return(o, nil).Once()
		uow, repo := new(MockUoW), new(MockOrderRepository)
		expectMutation(uow, repo, o, nil)

		calls := 0
		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW {
			calls++
			if calls == 1 {
				return reader
			}
			return uow
		}), seen)
		cmd, err := commands.NewApplyPaymentResultCommand("evt-1", txRef, payment.GatewaySuccess)
		require.NoError(t, err)

		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, payment.Paid, o.Payment().Status())
		seen.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should acknowledge a replayed event without touching the order", func(t *testing.T) {
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, "payment-callback:evt-1", commands.CallbackDedupTTL).Return(false, nil).Once()
		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW {
			t.Fatal("replayed event must not open a unit of work")
			return nil
		}), seen)
		cmd, _ := commands.NewApplyPaymentResultCommand("evt-1", "mk-abc", payment.GatewaySuccess)

		require.NoError(t, h.Handle(t.Context(), cmd))
	})

	t.Run("should accept a late callback that agrees with the poll", func(t *testing.T) {
		o := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
		require.NoError(t, o.ApplyGatewayResult(payment.GatewaySuccess))
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil)
		repo.On("GetByTransactionRef", mock.Anything, mock.Anything).Return(o, nil).Once()
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW { return uow }), seen)
		cmd, _ := commands.NewApplyPaymentResultCommand("evt-2", o.Payment().TransactionRef(), payment.GatewaySuccess)

		require.NoError(t, h.Handle(t.Context(), cmd))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should refuse a callback contradicting a settled payment", func(t *testing.T) {
		o := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
		require.NoError(t, o.ApplyGatewayResult(payment.GatewaySuccess))
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil)
		repo.On("GetByTransactionRef", mock.Anything, mock.Anything).Return(o, nil).Once()
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW { return uow }), seen)
		seen.On("Forget", mock.Anything, "payment-callback:evt-3").Return(nil).Once()
		cmd, _ := commands.NewApplyPaymentResultCommand("evt-3", o.Payment().TransactionRef(), payment.GatewayFailed)

		assert.ErrorIs(t, h.Handle(t.Context(), cmd), payment.ErrAlreadyResolved)
		assert.Equal(t, payment.Paid, o.Payment().Status())
		seen.AssertExpectations(t)
	})

	t.Run("should ignore a pending push", func(t *testing.T) {
		o := f.newOrder(t, payment.Chapa, kernel.Vehicle)
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetByTransactionRef", mock.Anything, mock.Anything).Return(o, nil).Once()

		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW { return uow }), seen)
		cmd, _ := commands.NewApplyPaymentResultCommand("evt-4", o.Payment().TransactionRef(), payment.GatewayPending)

		require.NoError(t, h.Handle(t.Context(), cmd))
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should report an unknown transaction", func(t *testing.T) {
		seen := new(MockIdempotencyStore)
		seen.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetByTransactionRef", mock.Anything, "mk-missing").
			Return(nil, errs.NewObjectNotFoundError("transactionRef", "mk-missing")).Once()

		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW { return uow }), seen)
		seen.On("Forget", mock.Anything, "payment-callback:evt-5").Return(nil).Once()
		cmd, _ := commands.NewApplyPaymentResultCommand("evt-5", "mk-missing", payment.GatewaySuccess)

		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
		seen.AssertExpectations(t)
	})

	t.Run("should apply a redelivered event after a failed attempt", func(t *testing.T) {
		stored := f.newOrder(t, payment.Chapa, kernel.Vehicle).State()
		txRef := stored.Payment.TransactionRef()
		firstTry, err := order.RestoreOrder(stored)
		require.NoError(t, err)
		retry, err := order.RestoreOrder(stored)
		require.NoError(t, err)

		seen, err := cache.NewMemoryStore()
		require.NoError(t, err)

		reads := new(MockOrderRepository)
		reads.On("GetByTransactionRef", mock.Anything, txRef).Return(firstTry, nil).Once()
		reads.On("GetByTransactionRef", mock.Anything, txRef).Return(retry, nil).Once()
		reader := new(MockUoW)
		reader.On("OrderRepository").Return(reads)

		lost, lostRepo := new(MockUoW), new(MockOrderRepository)
		expectMutation(lost, lostRepo, firstTry, errs.NewConcurrencyConflictError("order", stored.ID.String(), stored.Version))
		won, wonRepo := new(MockUoW), new(MockOrderRepository)
		expectMutation(won, wonRepo, retry, nil)

		units := []commands.OrderUoW{reader, lost, reader, won}
		h := commands.NewApplyPaymentResultCommandHandler(orderUoWFactory(func() commands.OrderUoW {
			next := units[0]
			units = units[1:]
			return next
		}), seen)
		cmd, err := commands.NewApplyPaymentResultCommand("evt-6", txRef, payment.GatewaySuccess)
		require.NoError(t, err)

		assert.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrConcurrencyConflict)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, payment.Paid, retry.Payment().Status())
		lostRepo.AssertNumberOfCalls(t, "Update", 1)
		wonRepo.AssertNumberOfCalls(t, "Update", 1)
		won.AssertExpectations(t)

		replayed, err := seen.Remember(t.Context(), "payment-callback:evt-6", commands.CallbackDedupTTL)
		require.NoError(t, err)
		assert.False(t, replayed, "an applied event stays remembered")
	})
}

func TestReconcilePaymentsCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)

	paid := f.newOrder(t, payment.Chapa, kernel.Vehicle)
	waiting := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
	broken := f.newOrder(t, payment.Telebirr, kernel.Motorbike)

	lister, listRepo := new(MockUoW), new(MockOrderRepository)
	lister.On("OrderRepository").Return(listRepo)
	listRepo.On("ListAwaitingGateway", mock.Anything, 50).
		Return([]*order.Order{paid, waiting, broken}, nil).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("CheckStatus", mock.Anything, paid.Payment().TransactionRef()).Return(payment.GatewaySuccess, nil).Once()
	gateway.On("CheckStatus", mock.Anything, waiting.Payment().TransactionRef()).Return(payment.GatewayPending, nil).Once()
	gateway.On("CheckStatus", mock.Anything, broken.Payment().TransactionRef()).
		Return(payment.GatewayPending, errors.New("gateway unavailable")).Once()

	writer, writeRepo := new(MockUoW), new(MockOrderRepository)
	expectMutation(writer, writeRepo, paid, nil)

	calls := 0
	h := commands.NewReconcilePaymentsCommandHandler(orderUoWFactory(func() commands.OrderUoW {
		calls++
		if calls == 1 {
			return lister
		}
		return writer
	}), gateway)
	cmd, err := commands.NewReconcilePaymentsCommand(50)
	require.NoError(t, err)

	result, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway unavailable")
	assert.Equal(t, commands.ReconcileResult{Checked: 3, Settled: 1}, result)
	assert.Equal(t, payment.Paid, paid.Payment().Status())
	assert.Equal(t, payment.Pending, waiting.Payment().Status())
	gateway.AssertExpectations(t)
}

func TestNewReconcilePaymentsCommand(t *testing.T) {
	_, err := commands.NewReconcilePaymentsCommand(0)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
