// Package domain contains the agent pricing rule model and tier quote types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AgentPricingRule is a per-agent pricing override. At most one active rule per
// agent is expected; the lookup treats additional rows as configuration noise
// and takes the first.
type AgentPricingRule struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	AgentID        string       `gorm:"column:agent_id;type:text;not null;index" json:"agent_id"`
	MarkupPct      float64      `gorm:"column:markup_pct;not null;default:0" json:"markup_pct"`
	MinMargin      float64      `gorm:"column:min_margin;not null;default:0" json:"min_margin"`
	MaxDiscountPct float64      `gorm:"column:max_discount_pct;not null;default:20" json:"max_discount_pct"`
	Active         bool         `gorm:"not null" json:"active"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AgentPricingRule) TableName() string { return "agent_pricing_rules" }
