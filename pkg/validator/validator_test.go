package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutForm struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
	Qty   int    `validate:"gte=1"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(checkoutForm{Name: "Ahmad", Email: "ahmad@example.com", Qty: 2})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(checkoutForm{Name: "A", Email: "not-an-email", Qty: 0})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "must be at least 2 characters", fields["Name"])
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be greater than or equal to 1", fields["Qty"])
	assert.Contains(t, valErr.Error(), "field 'Email'")
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"Name":"Ahmad","Email":"ahmad@example.com","Qty":1}`))

	var form checkoutForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "Ahmad", form.Name)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))

	var form checkoutForm
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
