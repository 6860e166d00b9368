package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,username"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Age             int    `json:"age" binding:"required,gte=18"`
}

func validate(t *testing.T, s any) error {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(s)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	err := validate(t, signupPayload{
		Email:           "not-an-email",
		Username:        "x",
		Password:        "short",
		ConfirmPassword: "different",
		Age:             15,
	})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Contains(t, details, "username")
	assert.Contains(t, details["password"], "at least")
	assert.Contains(t, details["confirmPassword"], "equal to")
	assert.Contains(t, details["age"], "greater than or equal to 18")
}

func TestToDetailsValidPayload(t *testing.T) {
	err := validate(t, signupPayload{
		Email:           "jane@example.com",
		Username:        "jane42",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		Age:             25,
	})
	assert.NoError(t, err)
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
