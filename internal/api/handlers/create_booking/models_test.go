package create_booking

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHTTPRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ServiceID:     "1",
		EmployeeID:    "1",
		Date:          "2027-04-05",
		StartTime:     "10:00",
		EndTime:       "10:45",
		CustomerName:  "Eva Nováková",
		CustomerEmail: "eva@example.com",
		CustomerPhone: "+421 900 111 222",
	}
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	validate := validator.New()

	require.NoError(t, validate.Struct(validHTTPRequest()))

	tests := []struct {
		name      string
		mutate    func(r *CreateBookingRequest)
		wantField string
		wantTag   string
	}{
		{"missing phone", func(r *CreateBookingRequest) { r.CustomerPhone = "" }, "CustomerPhone", "required"},
		{"phone too short", func(r *CreateBookingRequest) { r.CustomerPhone = "123" }, "CustomerPhone", "min"},
		{"missing email", func(r *CreateBookingRequest) { r.CustomerEmail = "" }, "CustomerEmail", "required"},
		{"bad email", func(r *CreateBookingRequest) { r.CustomerEmail = "not-an-email" }, "CustomerEmail", "email"},
		{"bad date", func(r *CreateBookingRequest) { r.Date = "05.04.2027" }, "Date", "datetime"},
		{"missing name", func(r *CreateBookingRequest) { r.CustomerName = "" }, "CustomerName", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validHTTPRequest()
			tt.mutate(&req)

			err := validate.Struct(req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}
