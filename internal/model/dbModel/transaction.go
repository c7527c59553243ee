package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	StockID       int64           `db:"stock_id"`
	Symbol        string          `db:"symbol"`
	Amount        decimal.Decimal `db:"amount"`
	Kind          string          `db:"kind"`
	DtCreate      time.Time       `db:"dt_create"`
}
