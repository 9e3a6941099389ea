package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Optional records whether a JSON field was present at all, so PATCH and PUT
// can leave absent fields untouched. Null is set for an explicit JSON null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Null = bytes.Equal(bytes.TrimSpace(b), []byte("null"))
	return json.Unmarshal(b, &o.Value)
}

// TagList is a comma-separated tag field. Clients may send either the raw
// string, which is kept byte for byte, or a JSON array of tags, which is
// joined with ",".
type TagList string

func (t *TagList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var tags []string
		if err := json.Unmarshal(b, &tags); err != nil {
			return err
		}
		*t = JoinTags(tags)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = TagList(s)
	return nil
}

// Tags splits the list into trimmed, non-empty tags in their original order.
func (t TagList) Tags() []string {
	parts := strings.Split(string(t), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func JoinTags(tags []string) TagList {
	return TagList(strings.Join(tags, ","))
}

// JournalEntryRequest is the body of create, PUT and PATCH. id, created_at and
// updated_at are read-only and ignored when sent.
type JournalEntryRequest struct {
	Date                Optional[*string]         `json:"date"`
	LTF                 Optional[string]          `json:"ltf"`
	HTF                 Optional[string]          `json:"htf"`
	Bias                Optional[string]          `json:"bias"`
	Array               Optional[TagList]         `json:"array"`
	Results             Optional[TagList]         `json:"results"`
	PnL                 Optional[decimal.Decimal] `json:"pnl"`
	Emotions            Optional[*TagList]        `json:"emotions"`
	BeforeTradeEmotions Optional[*TagList]        `json:"before_trade_emotions"`
	InTradeEmotions     Optional[*TagList]        `json:"in_trade_emotions"`
	AfterTradeEmotions  Optional[*TagList]        `json:"after_trade_emotions"`
	Mistake             Optional[*TagList]        `json:"mistake"`
	Reason              Optional[*string]         `json:"reason"`
}

// journalEntryFields is the part of a request the validator checks. Empty
// strings stand for fields that were absent or null.
type journalEntryFields struct {
	Date string `validate:"omitempty,date_only"`
	Bias string `validate:"omitempty,oneof=buy sell"`
	PnL  string `validate:"omitempty,decimal_places=2,decimal_abs_lt=100000000"`
}

// Validate rejects nulls for columns that cannot hold them, then runs the
// struct rules registered by NewValidator. The error wraps ErrInvalidEntry.
func (r *JournalEntryRequest) Validate(v *goValidator.Validate) error {
	notNull := []struct {
		name string
		null bool
	}{
		{"ltf", r.LTF.Null},
		{"htf", r.HTF.Null},
		{"bias", r.Bias.Null},
		{"array", r.Array.Null},
		{"results", r.Results.Null},
		{"pnl", r.PnL.Null},
	}
	for _, f := range notNull {
		if f.null {
			return fmt.Errorf("%w: %s may not be null", ErrInvalidEntry, f.name)
		}
	}

	var fields journalEntryFields
	if r.Bias.Set {
		fields.Bias = r.Bias.Value
	}
	if r.PnL.Set {
		fields.PnL = r.PnL.Value.String()
	}
	if r.Date.Set && r.Date.Value != nil {
		fields.Date = *r.Date.Value
	}

	if err := v.Struct(fields); err != nil {
		return entryValidationError(err)
	}
	return nil
}

// ApplyTo copies every field present in the request onto entry. Call Validate
// first.
func (r *JournalEntryRequest) ApplyTo(entry *model.JournalEntry) error {
	if r.Date.Set {
		date, err := parseDate(r.Date.Value)
		if err != nil {
			return err
		}
		entry.Date = date
	}
	if r.LTF.Set {
		entry.LTF = r.LTF.Value
	}
	if r.HTF.Set {
		entry.HTF = r.HTF.Value
	}
	if r.Bias.Set {
		entry.Bias = model.Bias(r.Bias.Value)
	}
	if r.Array.Set {
		entry.Array = string(r.Array.Value)
	}
	if r.Results.Set {
		entry.Results = string(r.Results.Value)
	}
	if r.PnL.Set {
		entry.PnL = r.PnL.Value.Round(2)
	}
	applyText(&entry.Emotions, r.Emotions)
	applyText(&entry.BeforeTradeEmotions, r.BeforeTradeEmotions)
	applyText(&entry.InTradeEmotions, r.InTradeEmotions)
	applyText(&entry.AfterTradeEmotions, r.AfterTradeEmotions)
	applyText(&entry.Mistake, r.Mistake)
	if r.Reason.Set {
		entry.Reason = r.Reason.Value
	}
	return nil
}

func applyText(dst **string, src Optional[*TagList]) {
	if !src.Set {
		return
	}
	if src.Value == nil {
		*dst = nil
		return
	}
	s := string(*src.Value)
	*dst = &s
}

func parseDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(utils.DateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date has wrong format, use YYYY-MM-DD", ErrInvalidEntry)
	}
	d := datatypes.Date(t)
	return &d, nil
}

type JournalEntryResponse struct {
	ID                  uint      `json:"id"`
	Date                *string   `json:"date"`
	LTF                 string    `json:"ltf"`
	HTF                 string    `json:"htf"`
	Bias                string    `json:"bias"`
	Array               string    `json:"array"`
	PnL                 string    `json:"pnl"`
	Emotions            *string   `json:"emotions"`
	Mistake             *string   `json:"mistake"`
	BeforeTradeEmotions *string   `json:"before_trade_emotions"`
	InTradeEmotions     *string   `json:"in_trade_emotions"`
	AfterTradeEmotions  *string   `json:"after_trade_emotions"`
	Reason              *string   `json:"reason"`
	Results             string    `json:"results"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewJournalEntryResponse(e model.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:                  e.ID,
		LTF:                 e.LTF,
		HTF:                 e.HTF,
		Bias:                string(e.Bias),
		Array:               e.Array,
		PnL:                 e.PnL.StringFixed(2),
		Emotions:            e.Emotions,
		Mistake:             e.Mistake,
		BeforeTradeEmotions: e.BeforeTradeEmotions,
		InTradeEmotions:     e.InTradeEmotions,
		AfterTradeEmotions:  e.AfterTradeEmotions,
		Reason:              e.Reason,
		Results:             e.Results,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if d, ok := e.DateValue(); ok {
		resp.Date = utils.ToPointer(d.Format(utils.DateLayout))
	}
	return resp
}

func NewJournalEntryListResponse(entries []model.JournalEntry) []JournalEntryResponse {
	resp := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, NewJournalEntryResponse(e))
	}
	return resp
}

// ListEntriesQuery is the query string of GET /journal/entries/. A nil
// filter field means the parameter was not sent.
type ListEntriesQuery struct {
	PeriodQuery
	Bias     *string
	Array    *string
	Emotions *string
}

// JournalEntryFilter selects a subset of entries. A nil Period means every
// date, including entries without one.
type JournalEntryFilter struct {
	Period   *Period
	Bias     *string
	Array    *string
	Emotions *string
}
