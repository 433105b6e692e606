package paymentsvc

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/payment"
)

// ConsoleProcessor logs payment intents instead of creating them. For debug & tests.
type ConsoleProcessor struct {
	logger core.Logger
}

var _ payment.Processor = (*ConsoleProcessor)(nil)

func NewConsoleProcessor(logger core.Logger) *ConsoleProcessor {
	return &ConsoleProcessor{logger: logger}
}

func (p *ConsoleProcessor) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	p.logger.Info("payment intent", map[string]interface{}{
		"id":       id,
		"amount":   amount,
		"currency": currency,
		"methods":  []string{paymentMethodCard},
	})
	return id + "_secret_console", nil
}
