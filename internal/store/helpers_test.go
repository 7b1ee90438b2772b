package store

import (
	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func sampleEntry() *domain.Entry {
	return &domain.Entry{
		ID:          uuid.New(),
		Description: "Conta de luz",
		Month:       5,
		Year:        2024,
		Value:       decimal.RequireFromString("120.50"),
		Type:        domain.EntryTypeExpense,
		Status:      domain.EntryStatusPending,
		UserID:      uuid.New(),
	}
}
