package payment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/skillboost/core"
)

// Payment records a completed charge for a course.
type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	CourseID      string    `json:"courseId,omitempty"`
	CourseTitle   string    `json:"title,omitempty"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"date"` // UTC
}

type NewPayment struct {
	Email         string  `json:"email" validate:"required,email"`
	Name          string  `json:"name"`
	CourseID      string  `json:"courseId"`
	CourseTitle   string  `json:"title"`
	Price         float64 `json:"price" validate:"gte=0"`
	TransactionID string  `json:"transactionId" validate:"required"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.Email = core.CleanEmail(np.Email)
	np.Name = core.CleanString(np.Name)
	np.CourseID = core.CleanString(np.CourseID)
	np.TransactionID = core.CleanString(np.TransactionID)
	return validate.Struct(np)
}

// IntentRequest asks for a payment intent for the given course price, in dollars.
// The processor enforces its own minimum.
type IntentRequest struct {
	Price float64 `json:"price"`
}

func (ir *IntentRequest) Validate(validate *validator.Validate) error {
	if _, err := AmountFromPrice(ir.Price); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "price", Error: "is out of range"})
	}
	return validate.Struct(ir)
}

type IntentResult struct {
	ClientSecret string `json:"clientSecret"`
}
