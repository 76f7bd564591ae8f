package achievement

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Achievement is a catalog entry; users earn it via a join row.
type Achievement struct {
	ID          string      `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description null.String `db:"description" json:"description,omitempty"`
	Icon        null.String `db:"icon" json:"icon,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"` // UTC
}

// Earned is an Achievement joined with the moment a user earned it.
type Earned struct {
	Achievement
	EarnedAt time.Time `db:"earned_at" json:"earnedAt"` // UTC
}
