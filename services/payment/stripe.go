package paymentsvc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/payment"
)

const paymentMethodCard = "card"

type StripeProcessor struct {
	sc *client.API
}

var _ payment.Processor = (*StripeProcessor)(nil)

func NewStripeProcessor(conf *core.Config) *StripeProcessor {
	return &StripeProcessor{sc: client.New(conf.Stripe.SecretKey, nil)}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
	}
	params.Context = ctx

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return "", errors.Wrap(err, "stripe: creating payment intent")
	}
	return pi.ClientSecret, nil
}
