package gorm

import (
	"time"

	"mitche/backend/internal/constants"
)

type Echo struct {
	ID          string               `gorm:"column:id;primaryKey;type:uuid"`
	AuthorID    string               `gorm:"column:author_id;type:uuid;index"`
	Title       string               `gorm:"column:title"`
	Description string               `gorm:"column:description"`
	Category    string               `gorm:"column:category"`
	Location    string               `gorm:"column:location"`
	Status      constants.EchoStatus `gorm:"column:status"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Offerings []Offering `gorm:"foreignKey:EchoID"`
}

// TableName specifies the table name for GORM
func (Echo) TableName() string {
	return "echoes"
}

type Offering struct {
	ID        string                 `gorm:"column:id;primaryKey;type:uuid"`
	EchoID    string                 `gorm:"column:echo_id;type:uuid;index"`
	HelperID  string                 `gorm:"column:helper_id;type:uuid;index"`
	Kind      constants.OfferingKind `gorm:"column:kind"`
	Message   string                 `gorm:"column:message"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Offering) TableName() string {
	return "offerings"
}

// TapestryThread is a short commemorative story honoring a user's
// contribution. Threads feed the aggregator's per-author counts.
type TapestryThread struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	AuthorID  string    `gorm:"column:author_id;type:uuid;index"`
	HonoreeID string    `gorm:"column:honoree_id;type:uuid;index"`
	Title     string    `gorm:"column:title"`
	Story     string    `gorm:"column:story"`
	Color     string    `gorm:"column:color"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TapestryThread) TableName() string {
	return "tapestry_threads"
}
