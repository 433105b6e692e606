package payment_test

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/storage/database/inmem"
)

type processorMock struct {
	amount   int64
	currency string
	err      error
}

func (p *processorMock) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	p.amount, p.currency = amount, currency
	if p.err != nil {
		return "", p.err
	}
	return "pi_secret", nil
}

func TestAmountFromPrice(t *testing.T) {
	tests := []struct {
		price   float64
		want    int64
		wantErr error
	}{
		{price: 0, want: 0},
		{price: 1, want: 100},
		{price: 19.99, want: 1999},
		{price: 4.35, want: 435},
		{price: 0.125, want: 13},
		{price: -5, want: -500},
		{price: 9e16, want: 9e18},
		{price: 1e17, wantErr: payment.ErrPriceOutOfRange},
		{price: 1e30, wantErr: payment.ErrPriceOutOfRange},
		{price: -1e30, wantErr: payment.ErrPriceOutOfRange},
		{price: math.NaN(), wantErr: payment.ErrPriceOutOfRange},
		{price: math.Inf(1), wantErr: payment.ErrPriceOutOfRange},
	}
	for _, tt := range tests {
		got, err := payment.AmountFromPrice(tt.price)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "price %v", tt.price)
			continue
		}
		require.NoError(t, err, "price %v", tt.price)
		assert.Equal(t, tt.want, got, "price %v", tt.price)
	}
}

func TestService_CreateIntent(t *testing.T) {
	ctx := context.Background()
	proc := &processorMock{}
	svc := payment.NewService(inmemdb.NewPaymentRepository(inmemdb.Open()), proc)

	res, err := svc.CreateIntent(ctx, payment.IntentRequest{Price: 49.99})
	require.NoError(t, err)
	assert.Equal(t, payment.IntentResult{ClientSecret: "pi_secret"}, res)
	assert.EqualValues(t, 4999, proc.amount)
	assert.Equal(t, "usd", proc.currency)

	proc.amount = 0
	_, err = svc.CreateIntent(ctx, payment.IntentRequest{Price: 1e30})
	assert.ErrorIs(t, err, payment.ErrPriceOutOfRange)
	assert.Zero(t, proc.amount, "processor must not be called")

	proc.err = errors.New("card_declined")
	_, err = svc.CreateIntent(ctx, payment.IntentRequest{Price: 10})
	assert.Error(t, err)
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	svc := payment.NewService(inmemdb.NewPaymentRepository(inmemdb.Open()), &processorMock{})

	res, err := svc.Record(ctx, payment.NewPayment{Email: "jane@x.com", Price: 49.99, TransactionID: "pi_1"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	p, err := svc.GetByID(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", p.TransactionID)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = svc.GetByID(ctx, "unknown")
	assert.ErrorIs(t, err, payment.ErrNotFound)

	payments, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
