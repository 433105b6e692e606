package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trezcool/skillboost/core/payment"
)

type paymentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Name          string             `bson:"name,omitempty"`
	CourseID      string             `bson:"courseId,omitempty"`
	CourseTitle   string             `bson:"title,omitempty"`
	Price         float64            `bson:"price"`
	TransactionID string             `bson:"transactionId"`
	CreatedAt     time.Time          `bson:"date"`
}

func (d paymentDoc) payment() payment.Payment {
	return payment.Payment{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Name:          d.Name,
		CourseID:      d.CourseID,
		CourseTitle:   d.CourseTitle,
		Price:         d.Price,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

type paymentRepository struct {
	payments *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) payment.Repository {
	return &paymentRepository{payments: db.Collection(paymentColl)}
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	doc := paymentDoc{
		ID:            primitive.NewObjectID(),
		Email:         p.Email,
		Name:          p.Name,
		CourseID:      p.CourseID,
		CourseTitle:   p.CourseTitle,
		Price:         p.Price,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
	if err := insertOne(ctx, repo.payments, doc); err != nil {
		return payment.Payment{}, err
	}
	return doc.payment(), nil
}

func (repo *paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.Payment, error) {
	return findAll(ctx, repo.payments, paymentDoc.payment)
}

func (repo *paymentRepository) GetPaymentByID(ctx context.Context, id string) (payment.Payment, error) {
	return findByID(ctx, repo.payments, id, paymentDoc.payment, payment.ErrNotFound)
}
