package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle classification of an entry.
// Any status may be assigned from any other; there is no transition table.
type EntryStatus string

// Possible entry status values
const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusConfirmed EntryStatus = "CONFIRMED"
	EntryStatusCanceled  EntryStatus = "CANCELED"
)

// EntryType tells incomes from expenses.
type EntryType string

// Possible entry type values
const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// Validation messages. They are part of the public contract and must not change.
const (
	MsgInvalidDescription = "Informe uma descricao valida."
	MsgInvalidMonth       = "Informe um mes valido."
	MsgInvalidYear        = "Informe um ano valido."
	MsgMissingUser        = "Informe um Usuario."
	MsgInvalidValue       = "Informe um valor valido."
	MsgMissingType        = "Informe um tipo de Lancamento."
	MsgInvalidStatus      = "Informe um status valido."
)

// Entry represents a single financial record ("lançamento"), an income or an
// expense owned by a user and tagged with a month/year period.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        EntryType       `json:"type"`
	Status      EntryStatus     `json:"status"`
	UserID      uuid.UUID       `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HasIdentity reports whether the entry has already been persisted.
func (e *Entry) HasIdentity() bool {
	return e.ID != uuid.Nil
}

// Validate checks the entry fields in a fixed order and returns a
// *BusinessRuleError for the first rule that fails. It has no side effects.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return NewBusinessRuleError(MsgInvalidDescription)
	}

	if e.Month < 1 || e.Month > 12 {
		return NewBusinessRuleError(MsgInvalidMonth)
	}

	if !isFourDigitYear(e.Year) {
		return NewBusinessRuleError(MsgInvalidYear)
	}

	if e.UserID == uuid.Nil {
		return NewBusinessRuleError(MsgMissingUser)
	}

	if !e.Value.IsPositive() {
		return NewBusinessRuleError(MsgInvalidValue)
	}

	if !e.Type.IsValid() {
		return NewBusinessRuleError(MsgMissingType)
	}

	return nil
}

// isFourDigitYear reports whether the year renders as exactly four decimal digits.
func isFourDigitYear(year int) bool {
	if year <= 0 {
		return false
	}
	return len(strconv.Itoa(year)) == 4
}

// IsValid reports whether the status is one of the known values.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusConfirmed, EntryStatusCanceled:
		return true
	default:
		return false
	}
}

// IsValid reports whether the type is one of the known values.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeIncome, EntryTypeExpense:
		return true
	default:
		return false
	}
}
