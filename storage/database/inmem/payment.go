package inmemdb

import (
	"context"

	"github.com/trezcool/skillboost/core/payment"
)

type paymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) CreatePayment(_ context.Context, p payment.Payment) (payment.Payment, error) {
	return create(repo.db.payment, p, func(p *payment.Payment, id string) { p.ID = id }), nil
}

func (repo *paymentRepository) QueryAllPayments(context.Context) ([]payment.Payment, error) {
	return repo.db.payment.all(), nil
}

func (repo *paymentRepository) GetPaymentByID(_ context.Context, id string) (payment.Payment, error) {
	if p, ok := repo.db.payment.get(id); ok {
		return p, nil
	}
	return payment.Payment{}, payment.ErrNotFound
}
