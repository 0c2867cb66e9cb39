package service

import (
	"testing"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/financeia/financeia-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest() (*AuthService, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo, "test-secret", 24*time.Hour)
	return service, userRepo
}

func TestRegister_Success(t *testing.T) {
	service, _ := setupAuthServiceTest()

	user, err := service.Register("Ana@Example.com", "Ana", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email, "email is normalized to lower case")
	require.NotNil(t, user.Name)
	assert.Equal(t, "Ana", *user.Name)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct-horse", user.PasswordHash, "password is never stored in the clear")
}

func TestRegister_Validation(t *testing.T) {
	service, _ := setupAuthServiceTest()

	_, err := service.Register("not-an-email", "", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = service.Register("ana@example.com", "", "short")
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _ := setupAuthServiceTest()

	_, err := service.Register("ana@example.com", "", "correct-horse")
	require.NoError(t, err)

	_, err = service.Register("ana@example.com", "", "another-pass")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_And_ValidateToken(t *testing.T) {
	service, _ := setupAuthServiceTest()

	user, err := service.Register("ana@example.com", "Ana", "correct-horse")
	require.NoError(t, err)

	token, loggedIn, err := service.Login("ana@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _ := setupAuthServiceTest()

	_, err := service.Register("ana@example.com", "", "correct-horse")
	require.NoError(t, err)

	_, _, err = service.Login("ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = service.Login("nobody@example.com", "whatever-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown emails look identical to bad passwords")
}

func TestValidateToken_Garbage(t *testing.T) {
	service, _ := setupAuthServiceTest()

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = service.ValidateToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	issuer := NewAuthService(userRepo, "secret-a", 24*time.Hour)
	verifier := NewAuthService(userRepo, "secret-b", 24*time.Hour)

	_, err := issuer.Register("ana@example.com", "", "correct-horse")
	require.NoError(t, err)
	token, _, err := issuer.Login("ana@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = verifier.GetUser(uuid.Nil)
	assert.Error(t, err)
}
