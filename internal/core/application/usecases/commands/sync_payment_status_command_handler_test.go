package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fastPoll = commands.PollPolicy{Interval: time.Millisecond, Attempts: 30}

func TestSyncPaymentStatusCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)

	t.Run("should mark paid after 29 pending answers", func(t *testing.T) {
		o := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
		txRef := o.Payment().TransactionRef()

		reader, writer := new(MockUoW), new(MockOrderRepository)
		reads := new(MockOrderRepository)
		reader.On("OrderRepository").Return(reads)
		reads.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("CheckStatus", mock.Anything, txRef).Return(payment.GatewayPending, nil).Times(29)
		gateway.On("CheckStatus", mock.Anything, txRef).Return(payment.GatewaySuccess, nil).Once()

		uow := new(MockUoW)
		expectMutation(uow, writer, o, nil)

		created := 0
		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW {
				created++
				if created == 1 {
					return reader
				}
				return uow
			}),
			gateway,
			fastPoll,
		)
		cmd, err := commands.NewSyncPaymentStatusCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, payment.Paid, o.Payment().Status())
		gateway.AssertNumberOfCalls(t, "CheckStatus", 30)
		uow.AssertExpectations(t)
	})

	t.Run("should time out when the gateway never settles", func(t *testing.T) {
		o := f.newOrder(t, payment.Chapa, kernel.Motorbike)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("CheckStatus", mock.Anything, mock.Anything).Return(payment.GatewayPending, nil)

		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return uow }), gateway, fastPoll)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		err := h.Handle(t.Context(), cmd)

		var timeout *commands.PaymentTimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.ErrorIs(t, err, commands.ErrPaymentTimeout)
		assert.Equal(t, 30, timeout.Attempts)
		assert.Equal(t, o.Payment().TransactionRef(), timeout.TransactionRef)
		assert.Equal(t, payment.Pending, o.Payment().Status())
		gateway.AssertNumberOfCalls(t, "CheckStatus", 30)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should stop at once on an unknown transaction", func(t *testing.T) {
		o := f.newOrder(t, payment.Chapa, kernel.Vehicle)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("CheckStatus", mock.Anything, mock.Anything).
			Return(payment.GatewayPending, ports.ErrUnknownTransaction).Once()

		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return uow }), gateway, fastPoll)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		err := h.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, ports.ErrUnknownTransaction)
		gateway.AssertNumberOfCalls(t, "CheckStatus", 1)
	})

	t.Run("should retry transport errors", func(t *testing.T) {
		o := f.newOrder(t, payment.Chapa, kernel.Vehicle)
		reader, reads := new(MockUoW), new(MockOrderRepository)
		reader.On("OrderRepository").Return(reads)
		reads.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("CheckStatus", mock.Anything, mock.Anything).
			Return(payment.GatewayPending, errors.New("connection reset")).Twice()
		gateway.On("CheckStatus", mock.Anything, mock.Anything).Return(payment.GatewayFailed, nil).Once()

		uow, repo := new(MockUoW), new(MockOrderRepository)
		expectMutation(uow, repo, o, nil)
		first := true
		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW {
				if first {
					first = false
					return reader
				}
				return uow
			}), gateway, fastPoll)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, payment.Failed, o.Payment().Status())
	})

	t.Run("should refuse a manual payment", func(t *testing.T) {
		o := f.newOrder(t, payment.BankTransfer, kernel.Vehicle)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		gateway := new(MockPaymentGateway)

		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return uow }), gateway, fastPoll)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		assert.ErrorIs(t, h.Handle(t.Context(), cmd), payment.ErrNotGateway)
		gateway.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
	})

	t.Run("should leave a settled payment alone", func(t *testing.T) {
		o := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
		require.NoError(t, o.ApplyGatewayResult(payment.GatewaySuccess))
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		gateway := new(MockPaymentGateway)

		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return uow }), gateway, fastPoll)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		require.NoError(t, h.Handle(t.Context(), cmd))
		gateway.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		o := f.newOrder(t, payment.Telebirr, kernel.Vehicle)
		uow, repo := new(MockUoW), new(MockOrderRepository)
		uow.On("OrderRepository").Return(repo)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		ctx, cancel := context.WithCancel(t.Context())
		gateway := new(MockPaymentGateway)
		gateway.On("CheckStatus", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(payment.GatewayPending, nil)

		h := commands.NewSyncPaymentStatusCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return uow }),
			gateway,
			commands.PollPolicy{Interval: time.Hour, Attempts: 30},
		)
		cmd, _ := commands.NewSyncPaymentStatusCommand(o.ID())

		err := h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestNewSyncPaymentStatusCommandHandler_DefaultsPolicy(t *testing.T) {
	policy := commands.DefaultPollPolicy()

	assert.Equal(t, 2*time.Second, policy.Interval)
	assert.Equal(t, 30, policy.Attempts)
}
