package service

import (
	"context"
	"testing"

	"cashdrawer/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_TrimsAndAssignsIncreasingIDs(t *testing.T) {
	f := newFixture(t)

	a := f.employee(t, "  Ana ", " 111 ")
	b := f.employee(t, "Bruno", "222")

	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, "111", a.Document)
	assert.Greater(t, b.ID, a.ID)
}

func TestRegister_DuplicateDocument(t *testing.T) {
	f := newFixture(t)
	f.employee(t, "Ana", "111")

	_, err := f.employees.Register(context.Background(), dto.RegisterEmployeeRequest{
		Name: "Other", Document: "111", Secret: "xyz1",
	})
	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.employees.Register(context.Background(), dto.RegisterEmployeeRequest{Name: " ", Document: "1", Secret: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.employees.Register(context.Background(), dto.RegisterEmployeeRequest{Name: "A", Document: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ana := f.employee(t, "Ana", "111")
	ctx := context.Background()

	e, err := f.employees.Authenticate(ctx, "111", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, e.ID)
	assert.NotEqual(t, "s3cret", e.CredentialHash)

	_, err = f.employees.Authenticate(ctx, "111", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.employees.Authenticate(ctx, "999", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesSignedToken(t *testing.T) {
	f := newFixture(t)
	ana := f.employee(t, "Ana", "111")

	resp, err := f.employees.Login(context.Background(), dto.LoginRequest{Document: "111", Secret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, ana.ID, resp.Employee.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, ana.ID, claims["employee_id"])
	assert.Equal(t, "111", claims["document"])
}

func TestEmployeeGet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.employees.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
