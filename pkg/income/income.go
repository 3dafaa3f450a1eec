package income

import (
	"time"

	"github.com/paydivvy/paydivvy/internal/money"
)

// Income is a single paycheck: a dated receipt of money from a source, with
// the amount that was expected and the amount actually received.
type Income struct {
	Id       string
	Date     time.Time
	Source   string
	Expected money.Cents
	Received money.Cents
}
