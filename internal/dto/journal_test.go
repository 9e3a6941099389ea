package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
	"trading-journal/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func decodeRequest(t *testing.T, body string) JournalEntryRequest {
	t.Helper()
	var req JournalEntryRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestTagListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TagList
	}{
		{name: "raw string kept byte for byte", body: `"fvg, ob"`, want: "fvg, ob"},
		{name: "array joined", body: `["fvg","ob"]`, want: "fvg,ob"},
		{name: "null", body: `null`, want: ""},
		{name: "empty array", body: `[]`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad TagList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestTagListTags(t *testing.T) {
	assert.Equal(t, []string{"fvg", "ob", "bos"}, TagList(" fvg,ob,, bos ").Tags())
	assert.Empty(t, TagList("").Tags())
}

func TestJournalEntryRequestValidate(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "empty body", body: `{}`},
		{name: "buy", body: `{"bias":"buy","pnl":"150.00"}`},
		{name: "unset bias", body: `{"bias":""}`},
		{name: "numeric pnl", body: `{"pnl":-12.5}`},
		{name: "date", body: `{"date":"2024-01-15"}`},
		{name: "null date", body: `{"date":null}`},
		{name: "bad bias", body: `{"bias":"long"}`, wantErr: true},
		{name: "too many decimals", body: `{"pnl":"1.234"}`, wantErr: true},
		{name: "too many digits", body: `{"pnl":"123456789.00"}`, wantErr: true},
		{name: "bad date", body: `{"date":"15/01/2024"}`, wantErr: true},
		{name: "null reason", body: `{"reason":null,"emotions":null}`},
		{name: "null pnl", body: `{"pnl":null}`, wantErr: true},
		{name: "null bias", body: `{"bias":null}`, wantErr: true},
		{name: "null ltf", body: `{"ltf":null}`, wantErr: true},
		{name: "null array", body: `{"array":null}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decodeRequest(t, tt.body)
			err := req.Validate(v)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidEntry))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestJournalEntryRequestValidateMessages(t *testing.T) {
	v := NewValidator()

	req := decodeRequest(t, `{"pnl":null}`)
	assert.EqualError(t, req.Validate(v), "invalid journal entry: pnl may not be null")

	req = decodeRequest(t, `{"pnl":"0.001"}`)
	assert.EqualError(t, req.Validate(v), "invalid journal entry: pnl must have no more than 2 decimal places")

	req = decodeRequest(t, `{"pnl":"-100000000"}`)
	assert.EqualError(t, req.Validate(v), "invalid journal entry: pnl must have no more than 10 digits in total")

	req = decodeRequest(t, `{"pnl":"99999999.99"}`)
	assert.NoError(t, req.Validate(v))
}

func TestOptionalTracksNull(t *testing.T) {
	var absent, null, value struct {
		PnL Optional[decimal.Decimal] `json:"pnl"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"pnl": null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"pnl":"1.50"}`), &value))

	assert.False(t, absent.PnL.Set)
	assert.True(t, null.PnL.Set)
	assert.True(t, null.PnL.Null)
	assert.True(t, value.PnL.Set)
	assert.False(t, value.PnL.Null)
}

func TestJournalEntryRequestApplyTo(t *testing.T) {
	date := datatypes.Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	fear := "fear"
	entry := model.JournalEntry{
		Date:     &date,
		LTF:      "https://tv/ltf",
		Bias:     model.BiasSell,
		Array:    "fvg",
		PnL:      decimal.NewFromInt(5),
		Emotions: &fear,
	}

	req := decodeRequest(t, `{"bias":"buy","array":["fvg","ob"],"pnl":"150.00","emotions":null,"date":"2024-02-03"}`)
	require.NoError(t, req.ApplyTo(&entry))

	assert.Equal(t, model.BiasBuy, entry.Bias)
	assert.Equal(t, "fvg,ob", entry.Array)
	assert.True(t, entry.PnL.Equal(decimal.RequireFromString("150")))
	assert.Nil(t, entry.Emotions)
	assert.Equal(t, "https://tv/ltf", entry.LTF, "absent fields are kept")
	d, ok := entry.DateValue()
	require.True(t, ok)
	assert.Equal(t, "2024-02-03", d.Format("2006-01-02"))

	reset := decodeRequest(t, `{"date":""}`)
	require.NoError(t, reset.ApplyTo(&entry))
	assert.Nil(t, entry.Date)
}

func TestNewJournalEntryResponse(t *testing.T) {
	date := datatypes.Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	resp := NewJournalEntryResponse(model.JournalEntry{
		ID:   7,
		Date: &date,
		Bias: model.BiasBuy,
		PnL:  decimal.RequireFromString("150"),
	})

	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-01-15", *resp.Date)
	assert.Equal(t, "150.00", resp.PnL)
	assert.Equal(t, uint(7), resp.ID)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "date", "ltf", "htf", "bias", "array", "pnl", "emotions", "mistake",
		"before_trade_emotions", "in_trade_emotions", "after_trade_emotions", "reason", "results",
		"created_at", "updated_at"} {
		assert.Contains(t, fields, key)
	}

	noDate := NewJournalEntryResponse(model.JournalEntry{})
	assert.Nil(t, noDate.Date)
	assert.Equal(t, "0.00", noDate.PnL)
}
