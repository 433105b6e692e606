package payment

import (
	"context"
	"errors"
	"math"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/skillboost/core"
)

const (
	Currency = "usd"
)

var (
	// errors
	ErrNotFound        = errors.New("payment not found")
	ErrPriceOutOfRange = errors.New("price is out of range")
)

// maxCents is 2^63: amounts at or beyond it do not fit in an int64.
const maxCents = float64(math.MaxInt64)

type (
	Repository interface {
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		QueryAllPayments(ctx context.Context) ([]Payment, error)
		GetPaymentByID(ctx context.Context, id string) (Payment, error)
	}

	// Processor is the third-party payment processor.
	Processor interface {
		// CreateIntent returns the client secret of a new card payment intent.
		CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
	}

	Service struct {
		repo      Repository
		processor Processor
	}
)

func NewService(repo Repository, processor Processor) *Service {
	return &Service{repo: repo, processor: processor}
}

// AmountFromPrice converts a price in dollars to cents, rounding half away from zero.
// Bounds are left to the processor, except prices whose amount cannot be represented.
func AmountFromPrice(price float64) (int64, error) {
	cents := math.Round(price * 100)
	if math.IsNaN(cents) || math.Abs(cents) >= maxCents {
		return 0, ErrPriceOutOfRange
	}
	return int64(cents), nil
}

func (svc *Service) CreateIntent(ctx context.Context, ir IntentRequest) (IntentResult, error) {
	amount, err := AmountFromPrice(ir.Price)
	if err != nil {
		return IntentResult{}, err
	}
	secret, err := svc.processor.CreateIntent(ctx, amount, Currency)
	if err != nil {
		return IntentResult{}, pkgerrors.Wrap(err, "creating payment intent")
	}
	return IntentResult{ClientSecret: secret}, nil
}

func (svc *Service) Record(ctx context.Context, np NewPayment) (core.InsertResult, error) {
	p, err := svc.repo.CreatePayment(ctx, Payment{
		Email:         np.Email,
		Name:          np.Name,
		CourseID:      np.CourseID,
		CourseTitle:   np.CourseTitle,
		Price:         np.Price,
		TransactionID: np.TransactionID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return core.InsertResult{}, pkgerrors.Wrap(err, "recording payment")
	}
	return core.NewInsertResult(p.ID), nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Payment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Payment, error) {
	return svc.repo.GetPaymentByID(ctx, id)
}
