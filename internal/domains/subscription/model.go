package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"presskit-backend/internal/domains/user"
)

// Plan is one row of the subscription catalog. Prices are exact
// decimals; never floats.
type Plan struct {
	ID            uuid.UUID               `db:"id" json:"id"`
	Tier          user.SubscriptionStatus `db:"tier" json:"tier"`
	Name          string                  `db:"name" json:"name"`
	MonthlyPrice  decimal.Decimal         `db:"monthly_price" json:"monthly_price"`
	PresskitLimit int                     `db:"presskit_limit" json:"presskit_limit"`
	Features      []string                `db:"features" json:"features"`
	CreatedAt     time.Time               `db:"created_at" json:"created_at"`
}

// Usage reports how much of the plan's quota the profile consumes.
type Usage struct {
	PresskitCount int `json:"presskit_count"`
	PresskitLimit int `json:"presskit_limit"`
}

// CurrentDTO is the authed "my subscription" read model.
type CurrentDTO struct {
	Plan  Plan  `json:"plan"`
	Usage Usage `json:"usage"`
}
