package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnFrp/pharmacy-pos/dtos"
	"github.com/JohnFrp/pharmacy-pos/utils"
)

func registerInput(username, email string) dtos.RegisterInput {
	return dtos.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := openTestDB(t)
	service := NewAuthService(db)

	first, err := service.Register(registerInput("owner", "owner@pharmacy.com"))
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)
	assert.True(t, first.IsActive)
	assert.True(t, first.IsApproved)

	second, err := service.Register(registerInput("clerk", "clerk@pharmacy.com"))
	require.NoError(t, err)
	assert.Equal(t, "user", second.Role)
	assert.False(t, second.IsActive)
	assert.False(t, second.IsApproved)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	service := NewAuthService(db)

	_, err := service.Register(registerInput("owner", "owner@pharmacy.com"))
	require.NoError(t, err)

	var conflictErr *ConflictError
	_, err = service.Register(registerInput("owner", "other@pharmacy.com"))
	require.ErrorAs(t, err, &conflictErr)

	_, err = service.Register(registerInput("other", "owner@pharmacy.com"))
	require.ErrorAs(t, err, &conflictErr)

	input := registerInput("third", "third@pharmacy.com")
	input.ConfirmPassword = "different"
	var validationErr *ValidationError
	_, err = service.Register(input)
	require.ErrorAs(t, err, &validationErr)
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	service := NewAuthService(db)

	_, err := service.Register(registerInput("owner", "owner@pharmacy.com"))
	require.NoError(t, err)

	resp, err := service.Login(dtos.LoginInput{Username: "owner", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)

	userID, role, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), userID)
	assert.Equal(t, "admin", role)

	_, err = service.Login(dtos.LoginInput{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(dtos.LoginInput{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginGatesOnApprovalAndActivation(t *testing.T) {
	db := openTestDB(t)
	service := NewAuthService(db)

	_, err := service.Register(registerInput("owner", "owner@pharmacy.com"))
	require.NoError(t, err)
	pending, err := service.Register(registerInput("clerk", "clerk@pharmacy.com"))
	require.NoError(t, err)

	_, err = service.Login(dtos.LoginInput{Username: "clerk", Password: "secret123"})
	assert.ErrorIs(t, err, ErrPendingApproval)

	require.NoError(t, db.Model(pending).UpdateColumn("is_approved", true).Error)
	_, err = service.Login(dtos.LoginInput{Username: "clerk", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDeactivated)

	require.NoError(t, db.Model(pending).UpdateColumn("is_active", true).Error)
	_, err = service.Login(dtos.LoginInput{Username: "clerk", Password: "secret123"})
	assert.NoError(t, err)
}
