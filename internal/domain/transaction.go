package domain

import (
	"strconv"
	"strings"
)

// TransactionType is the polarity of a ledger entry
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// TypeFor derives the transaction type from the sign of amount.
// Zero counts as a credit.
func TypeFor(amount float64) TransactionType {
	if amount >= 0 {
		return Credit
	}
	return Debit
}

// Transaction Model. Rows are append-only.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`          // Primary key
	UserID      uint            `gorm:"not null;index" json:"user_id"` // Foreign key to User
	Amount      float64         `gorm:"not null" json:"amount"`        // Positive = credit, negative = debit
	Type        TransactionType `gorm:"size:16;not null" json:"type"`  // credit or debit
	Description *string         `json:"description"`                   // Optional free text

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Owning user, never loaded
}

// NewTransaction builds the ledger entry recorded for a wallet adjustment
func NewTransaction(userID uint, amount float64) Transaction {
	desc := Describe(amount)
	return Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        TypeFor(amount),
		Description: &desc,
	}
}

// Describe renders the adjustment description, e.g. "Wallet updated by 50.0"
func Describe(amount float64) string {
	return "Wallet updated by " + formatAmount(amount)
}

// formatAmount prints the shortest round-tripping form of f. Decimal
// exponents in [-4, 16) use fixed notation with at least one fractional
// digit, everything else scientific notation ("1e+20", "1e-05").
func formatAmount(f float64) string {
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
