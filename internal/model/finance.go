package model

import "github.com/google/uuid"

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// FinancialTransaction is clinic-level, not patient-owned. Date stays a plain
// "2006-01-02" string as stored in the snapshot; aggregators parse it
// tolerantly and skip malformed values instead of failing.
type FinancialTransaction struct {
	ID          uuid.UUID       `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
}

type CreateTransactionRequest struct {
	Type        TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount" binding:"gt=0"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
}

type UpdateTransactionRequest struct {
	Type        *TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Amount      *float64         `json:"amount" binding:"omitempty,gt=0"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
