package validation

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
)

type supervisorInput struct {
	FirstName string `validate:"notblank"`
	Email     string `validate:"required,email"`
	Years     int    `validate:"min=0,max=60"`
	Title     string `validate:"oneof=Dr Mr Ms Prof"`
}

func TestValidateReturnsFirstViolation(t *testing.T) {
	err := Validate(supervisorInput{FirstName: "  ", Email: "bad", Years: 3, Title: "Dr"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "FirstName is required", err.Error())

	assert.NoError(t, Validate(supervisorInput{FirstName: "Sarah", Email: "s@example.com", Years: 12, Title: "Dr"}))
}

func TestViolationsKeepsStructOrder(t *testing.T) {
	v := New()
	errs, err := Violations(context.Background(), v, supervisorInput{Email: "", Years: 99, Title: "Sir"})
	require.NoError(t, err)
	require.Len(t, errs, 4)
	assert.Equal(t, "FirstName", errs[0].StructField())
	assert.Equal(t, "Email", errs[1].StructField())
	assert.Equal(t, "Years", errs[2].StructField())
	assert.Equal(t, "Title", errs[3].StructField())
}

func TestCustomRules(t *testing.T) {
	type ward struct {
		Name string `validate:"ward"`
	}
	v := New(Rule{Tag: "ward", Func: func(_ context.Context, fl validator.FieldLevel) bool {
		return fl.Field().String() == "A" || fl.Field().String() == "B"
	}})

	errs, err := Violations(context.Background(), v, ward{Name: "C"})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "ward", errs[0].Tag())

	errs, err = Violations(context.Background(), v, ward{Name: "A"})
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestViolationsRejectsNonStruct(t *testing.T) {
	_, err := Violations(context.Background(), New(), "not a struct")
	assert.Error(t, err)
}
