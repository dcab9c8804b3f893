package valueobjects

import "fmt"

// Money represents a monetary amount in the smallest currency unit.
// For MNT the smallest unit is the möngö (1 MNT = 100 möngö), but QPay
// invoices are denominated in whole tögrög, so amounts are stored in
// whole currency units for MNT.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = "MNT"
	}
	return Money{
		amount:   amount,
		currency: currency,
	}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

// Covers reports whether the given paid amount satisfies this amount.
func (m Money) Covers(paid int64) bool {
	return paid >= m.amount
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
