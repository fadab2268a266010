package validator_test

import (
	"hotelops/shared/failure"
	"hotelops/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomStatus string

func (s roomStatus) Valid() bool {
	return s == "available" || s == "occupied"
}

type bookingRequest struct {
	RoomID   string     `json:"room_id"   validate:"required"`
	Email    string     `json:"email"     validate:"omitempty,email"`
	CheckIn  string     `json:"check_in"  validate:"required,date"`
	Nights   int        `json:"nights"    validate:"gte=1,lte=30"`
	Status   roomStatus `json:"status"    validate:"omitempty,enum"`
	Internal string     `json:"-"         validate:"empty"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingRequest
		expectedMsg string
	}{
		{
			name: "valid request",
			data: bookingRequest{RoomID: "r-1", CheckIn: "2025-01-15", Nights: 2, Status: "available"},
		},
		{
			name:        "missing room uses json name",
			data:        bookingRequest{CheckIn: "2025-01-15", Nights: 2},
			expectedMsg: "room_id is required",
		},
		{
			name:        "malformed date",
			data:        bookingRequest{RoomID: "r-1", CheckIn: "15/01/2025", Nights: 2},
			expectedMsg: "check_in must be a date in YYYY-MM-DD format",
		},
		{
			name:        "impossible date",
			data:        bookingRequest{RoomID: "r-1", CheckIn: "2025-02-30", Nights: 2},
			expectedMsg: "check_in must be a date in YYYY-MM-DD format",
		},
		{
			name:        "unknown enum value",
			data:        bookingRequest{RoomID: "r-1", CheckIn: "2025-01-15", Nights: 2, Status: "haunted"},
			expectedMsg: "status has an unsupported value",
		},
		{
			name:        "nights out of range",
			data:        bookingRequest{RoomID: "r-1", CheckIn: "2025-01-15", Nights: 0},
			expectedMsg: "nights must be greater than or equal to 1",
		},
		{
			name:        "field expected empty",
			data:        bookingRequest{RoomID: "r-1", CheckIn: "2025-01-15", Nights: 1, Internal: "x"},
			expectedMsg: "failed on the 'empty' tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectedMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.expectedMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	var req bookingRequest

	err := validator.Validate(strings.NewReader(`{"room_id":"r-1","check_in":"2025-01-15","nights":3}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "r-1", req.RoomID)

	err = validator.Validate(strings.NewReader(`{"room_id":`), &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2025-01-13", "date"))
	assert.Error(t, validator.ValidateVar("next monday", "date"))
	assert.NoError(t, validator.ValidateVar("staff@hotel.test", "email"))

	err := validator.ValidateVar("", "required")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required")
}
