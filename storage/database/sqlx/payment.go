package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/skillboost/core/payment"
)

type paymentRow struct {
	ID            string    `db:"id"`
	Email         string    `db:"email"`
	Name          string    `db:"name"`
	CourseID      string    `db:"course_id"`
	CourseTitle   string    `db:"course_title"`
	Price         float64   `db:"price"`
	TransactionID string    `db:"transaction_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r paymentRow) payment() payment.Payment {
	return payment.Payment{
		ID:            r.ID,
		Email:         r.Email,
		Name:          r.Name,
		CourseID:      r.CourseID,
		CourseTitle:   r.CourseTitle,
		Price:         r.Price,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

const paymentColumns = `id, email, name, course_id, course_title, price, transaction_id, created_at`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) payment.Repository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	p.ID = newID()
	row := paymentRow{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.Name,
		CourseID:      p.CourseID,
		CourseTitle:   p.CourseTitle,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
	q := `INSERT INTO payments (` + paymentColumns + `)
		VALUES (:id, :email, :name, :course_id, :course_title, :price, :transaction_id, :created_at)`
	if err := insert(ctx, repo.db, q, row); err != nil {
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return p, nil
}

func (repo *paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.Payment, error) {
	items, err := selectAll(ctx, repo.db, paymentRow.payment, `SELECT `+paymentColumns+` FROM payments ORDER BY seq`)
	return items, errors.Wrap(err, "querying payments")
}

func (repo *paymentRepository) GetPaymentByID(ctx context.Context, id string) (payment.Payment, error) {
	var row paymentRow
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := getByID(ctx, repo.db, &row, payment.ErrNotFound, q, id); err != nil {
		return payment.Payment{}, err
	}
	return row.payment(), nil
}
