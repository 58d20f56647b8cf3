package validator

import (
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=0,lte=150"`
}

func TestValidate_Success(t *testing.T) {
	s := testStruct{Name: "Ana", Email: "ana@example.com", Age: 30}
	err := Validate(s)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	s := testStruct{Email: "ana@example.com", Age: 30}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := testStruct{Name: "Ana", Email: "not-an-email", Age: 30}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Email")
	assert.Equal(t, "must be a valid email address", fields["Email"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := testStruct{Name: "Ana", Email: "ana@example.com", Age: 200}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Age")
	assert.Contains(t, fields["Age"], "150")
}

func TestValidate_MultipleFailures(t *testing.T) {
	err := Validate(testStruct{Age: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Fields(), 3)
	assert.Contains(t, valErr.Error(), "Name")
	assert.Contains(t, valErr.Error(), "Email")
}

func TestRegisterValidation_CustomTag(t *testing.T) {
	require.NoError(t, RegisterValidation("evenlen", func(fl playground.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}))

	type withCustom struct {
		Code string `validate:"evenlen"`
	}

	assert.NoError(t, Validate(withCustom{Code: "ab"}))

	err := Validate(withCustom{Code: "abc"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Code"], "evenlen")
}
