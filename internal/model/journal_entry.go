package model

import (
	"fmt"
	"strings"
	"time"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Bias string

const (
	BiasUnset Bias = ""
	BiasBuy   Bias = "buy"
	BiasSell  Bias = "sell"
)

// JournalEntry is one reflection on a discretionary trade. Array, Results and
// the emotion columns hold free-text, comma-separated values exactly as
// entered.
type JournalEntry struct {
	ID                  uint            `gorm:"primaryKey"`
	Date                *datatypes.Date `gorm:"index"`
	LTF                 string          `gorm:"column:ltf;type:text;not null;default:''"`
	HTF                 string          `gorm:"column:htf;type:text;not null;default:''"`
	Bias                Bias            `gorm:"type:varchar(10);not null;default:''"`
	Array               string          `gorm:"type:text;not null;default:''"`
	Results             string          `gorm:"type:text;not null;default:''"`
	PnL                 decimal.Decimal `gorm:"column:pnl;type:numeric(10,2);not null;default:0"`
	Emotions            *string         `gorm:"type:text"`
	BeforeTradeEmotions *string         `gorm:"type:text"`
	InTradeEmotions     *string         `gorm:"type:text"`
	AfterTradeEmotions  *string         `gorm:"type:text"`
	Mistake             *string         `gorm:"type:text"`
	Reason              *string         `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

func (e JournalEntry) IsProfitable() bool {
	return e.PnL.IsPositive()
}

func (e JournalEntry) IsLoss() bool {
	return e.PnL.IsNegative()
}

// DateValue returns the entry date, or false when none was recorded.
func (e JournalEntry) DateValue() (time.Time, bool) {
	if e.Date == nil {
		return time.Time{}, false
	}
	return time.Time(*e.Date), true
}

// String renders "2024-01-15 - Buy - P&L: 150.00".
func (e JournalEntry) String() string {
	dateStr := "No Date"
	if d, ok := e.DateValue(); ok {
		dateStr = d.Format(utils.DateLayout)
	}
	biasStr := "No Bias"
	if e.Bias != BiasUnset {
		b := string(e.Bias)
		biasStr = strings.ToUpper(b[:1]) + b[1:]
	}
	return fmt.Sprintf("%s - %s - P&L: %s", dateStr, biasStr, e.PnL.StringFixed(2))
}
