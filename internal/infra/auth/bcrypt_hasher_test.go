package auth

import (
	"strings"
	"testing"

	domainerrors "booknest/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	strongPassword := "StrongSecret123!"
	hash, err := hasher.Hash(strongPassword)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(strongPassword, hash))
}

func TestBcryptHasher_HashWithWeakPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	weakPasswords := []string{
		"123",            // Too short
		"password123!",   // Forbidden word
		"SECRETPHRASE1!", // No lowercase
		"secretphrase1!", // No uppercase
		"SecretPhrase!!", // No numbers
		"SecretPhrase12", // No special characters
	}

	for _, weakPassword := range weakPasswords {
		_, err := hasher.Hash(weakPassword)
		assert.Error(t, err, "Expected error for weak password: %s", weakPassword)
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher()
	password := "StrongSecret123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongSecret123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	validPasswords := []string{
		"StrongSecret123!",
		"MySecure@Phrase1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}

	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"SECRETPHRASE1!", "must contain at least one lowercase letter"},
		{"secretphrase1!", "must contain at least one uppercase letter"},
		{"SecretPhrase!!", "must contain at least one number"},
		{"SecretPhrase12", "must contain at least one special character"},
		{"MyPassword123!", "contains forbidden words"},
		{"MyAdmin#12345", "contains forbidden words"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr, "Error message should contain: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_ForbiddenWordsSentinel(t *testing.T) {
	hasher := NewBcryptHasher()

	err := hasher.ValidatePasswordStrength("MyPassword123!")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))
}

func TestBcryptHasher_MaxLength(t *testing.T) {
	hasher := NewBcryptHasher()

	longPassword := "ValidPrefix1!" + strings.Repeat("x", 100)
	err := hasher.ValidatePasswordStrength(longPassword)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongSecret123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_PasswordStrengthHelpers(t *testing.T) {
	hasher := &bcryptHasher{}

	assert.True(t, hasher.hasUppercase("Secret"))
	assert.False(t, hasher.hasUppercase("secret"))

	assert.True(t, hasher.hasLowercase("Secret"))
	assert.False(t, hasher.hasLowercase("SECRET"))

	assert.True(t, hasher.hasNumbers("Secret123"))
	assert.False(t, hasher.hasNumbers("Secret"))

	assert.True(t, hasher.hasSpecialChars("Secret!"))
	assert.False(t, hasher.hasSpecialChars("Secret"))

	forbiddenWords := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", forbiddenWords))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", forbiddenWords))
	assert.False(t, hasher.containsForbiddenWords("SecurePhrase123", forbiddenWords))
}
