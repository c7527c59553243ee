package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionBuy         TransactionKind = "BUY"
	TransactionSell        TransactionKind = "SELL"
	TransactionAddFunds    TransactionKind = "ADD_FUNDS"
	TransactionRemoveFunds TransactionKind = "REMOVE_FUNDS"
)

type Transaction struct {
	TransactionID int64
	StockID       int64
	Symbol        string
	Amount        decimal.Decimal
	Kind          TransactionKind
	DtCreate      time.Time
}
