package render_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/http/render"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

type payload struct {
	Name   string           `json:"name" validate:"required"`
	Amount decimal.Decimal  `json:"amount" validate:"gt=0"`
	Rate   *decimal.Decimal `json:"rate" validate:"omitempty,gte=0,lte=1"`
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name    string
		body    string
		wantErr string
	}

	tests := []testCase{
		{name: "Valid", body: `{"name":"a","amount":"12.50","rate":"0.2"}`},
		{name: "NumericAmount", body: `{"name":"a","amount":3}`},
		{name: "Malformed", body: `{"name":`, wantErr: "invalid request body"},
		{name: "MissingName", body: `{"amount":"1"}`, wantErr: "payload.name failed required"},
		{name: "ZeroAmount", body: `{"name":"a","amount":"0"}`, wantErr: "payload.amount failed gt"},
		{name: "RateTooHigh", body: `{"name":"a","amount":"1","rate":"1.5"}`, wantErr: "payload.rate failed lte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload

			err := render.Decode(r, &p)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestError(t *testing.T) {
	errMissing := errors.New("thing not found")

	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "NotFound", err: fmt.Errorf("getting: %w", errMissing), want: http.StatusNotFound},
		{name: "Conflict", err: fmt.Errorf("%w: busy", record.ErrConflict), want: http.StatusConflict},
		{name: "Other", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			render.Error(w, tt.err, errMissing)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start_date=2024-03-05&bad=05/03/2024", nil)

	got, err := render.Date(r, "start_date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *got)

	got, err = render.Date(r, "end_date")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = render.Date(r, "bad")
	assert.Error(t, err)

	end := render.EndOfDay(new(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), *end)
}

type period struct {
	Start render.DateOnly  `json:"start" validate:"required"`
	End   render.DateOnly  `json:"end" validate:"required,gtefield=Start"`
	Due   *render.DateOnly `json:"due,omitempty"`
}

func TestDecode_DateOnly(t *testing.T) {
	type testCase struct {
		name      string
		body      string
		wantStart time.Time
		wantDue   *time.Time
		wantErr   string
	}

	tests := []testCase{
		{
			name:      "DateOnly",
			body:      `{"start":"2024-03-01","end":"2024-03-31","due":"2024-04-15"}`,
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantDue:   new(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:      "RFC3339",
			body:      `{"start":"2024-03-01T09:30:00Z","end":"2024-03-31T00:00:00Z"}`,
			wantStart: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{name: "Missing", body: `{"end":"2024-03-31"}`, wantErr: "period.start failed required"},
		{name: "EndBeforeStart", body: `{"start":"2024-03-31","end":"2024-03-01"}`, wantErr: "period.end failed gtefield"},
		{name: "BadFormat", body: `{"start":"01/03/2024","end":"2024-03-31"}`, wantErr: "want YYYY-MM-DD"},
		{name: "NotAString", body: `{"start":20240301,"end":"2024-03-31"}`, wantErr: "date must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p period

			err := render.Decode(r, &p)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, p.Start.Time())
			assert.Equal(t, tt.wantDue, p.Due.TimePtr())
		})
	}
}
