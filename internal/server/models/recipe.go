package models

import "github.com/shopspring/decimal"

type Recipe struct {
	ID          int64
	UserID      int64
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Description string
}
