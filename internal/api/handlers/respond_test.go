package handlers

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/mycarexpenses-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"capitalised", fmt.Errorf("%w: make and model are required", services.ErrValidation), "Make and model are required"},
		{"field name kept", fmt.Errorf("%w: car_id, date, amount and category are required", services.ErrValidation), "car_id, date, amount and category are required"},
		{"bare sentinel", services.ErrValidation, services.ErrValidation.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicMessage(tt.err, services.ErrValidation))
		})
	}
}

func TestParseExpenseFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/expenses?car_id=7&start_date=2024-06&end_date=+2024-06-30+&category=Fuel", nil)
	filter := parseExpenseFilter(r, true)
	require.NotNil(t, filter.CarID)
	assert.Equal(t, int64(7), *filter.CarID)
	assert.Equal(t, "2024-06", *filter.StartDate)
	assert.Equal(t, "2024-06-30", *filter.EndDate)
	assert.Equal(t, "Fuel", *filter.Category)

	r = httptest.NewRequest("GET", "/api/analytics/summary?car_id=abc&category=Fuel&start_date=", nil)
	filter = parseExpenseFilter(r, false)
	require.NotNil(t, filter.CarID)
	assert.Equal(t, int64(0), *filter.CarID, "unparsable ids match no car")
	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.Category)
}
