package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/and161185/pedidos/internal/model"
	"github.com/and161185/pedidos/internal/utils"
	"github.com/shopspring/decimal"
)

const (
	DefaultMaxFutureDays  = 365
	DefaultMinSignalRatio = 0.20
)

const (
	msgPositive         = "%s deve ser maior que zero"
	msgSignalAboveTotal = "O valor do sinal não pode ser maior que o valor total"
	msgSignalTooLow     = "O valor do sinal deve ser pelo menos %s%% do valor total"
	msgDateRequired     = "Data e hora são obrigatórias"
	msgMustBeFuture     = "A entrega deve ser agendada para o futuro"
	msgYesterday        = "Esta data foi ontem. Selecione uma data futura"
	msgDaysAgo          = "Esta data foi há %d dias atrás"
	msgBeyondHorizon    = "O agendamento não pode exceder %d dias a partir de hoje."
)

// Result is either valid or carries the reason and the field to blame.
type Result struct {
	Valid  bool
	Reason string
	Field  model.Field
}

func Valid() Result {
	return Result{Valid: true}
}

func Invalid(field model.Field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

type Engine struct {
	maxFutureDays  int
	minSignalRatio decimal.Decimal
}

func NewEngine(maxFutureDays int, minSignalRatio float64) *Engine {
	if maxFutureDays <= 0 {
		maxFutureDays = DefaultMaxFutureDays
	}
	if minSignalRatio <= 0 || minSignalRatio > 1 {
		minSignalRatio = DefaultMinSignalRatio
	}
	return &Engine{
		maxFutureDays:  maxFutureDays,
		minSignalRatio: decimal.NewFromFloat(minSignalRatio),
	}
}

// ParseAmount coerces user input to a monetary amount; anything that is not
// a number becomes zero.
func ParseAmount(s string) decimal.Decimal {
	return decimal.NewFromFloat(utils.ParseNumber(s))
}

func (e *Engine) ValidatePositive(value decimal.Decimal, field model.Field) Result {
	if !value.IsPositive() {
		return Invalid(field, fmt.Sprintf(msgPositive, field.Label()))
	}
	return Valid()
}

func (e *Engine) ValidateMonetaryPair(total, signal decimal.Decimal) Result {
	if res := e.ValidatePositive(total, model.FieldValorTotal); !res.Valid {
		return res
	}
	if res := e.ValidatePositive(signal, model.FieldValorSinal); !res.Valid {
		return res
	}

	if signal.GreaterThan(total) {
		return Invalid(model.FieldValorSinal, msgSignalAboveTotal)
	}

	minSignal := total.Mul(e.minSignalRatio)
	if signal.LessThan(minSignal) {
		pct := e.minSignalRatio.Mul(decimal.NewFromInt(100)).String()
		return Invalid(model.FieldValorSinal, fmt.Sprintf(msgSignalTooLow, pct))
	}

	return Valid()
}

// ValidateFutureDateTime checks that date (YYYY-MM-DD) and hour (HH:mm),
// read in now's location, fall in (now, now+maxFutureDays].
func (e *Engine) ValidateFutureDateTime(date, hour string, now time.Time) Result {
	date, hour = strings.TrimSpace(date), strings.TrimSpace(hour)
	if date == "" || hour == "" {
		return Invalid(model.FieldDataEntrega, msgDateRequired)
	}

	at, err := time.ParseInLocation(model.DateLayout+"T"+model.HourLayout, date+"T"+hour, now.Location())
	if err != nil {
		return Invalid(model.FieldDataEntrega, msgDateRequired)
	}

	if !at.After(now) {
		return Invalid(model.FieldDataEntrega, pastDateMessage(now, at))
	}

	limit := now.AddDate(0, 0, e.maxFutureDays)
	if at.After(limit) {
		return Invalid(model.FieldDataEntrega, fmt.Sprintf(msgBeyondHorizon, e.maxFutureDays))
	}

	return Valid()
}

// pastDateMessage rounds the distance up to whole days, so anything up to
// 24h in the past already reads as "ontem".
func pastDateMessage(now, at time.Time) string {
	days := int(math.Ceil(now.Sub(at).Hours() / 24))

	switch days {
	case 0:
		return msgMustBeFuture
	case 1:
		return msgYesterday
	default:
		return fmt.Sprintf(msgDaysAgo, days)
	}
}
