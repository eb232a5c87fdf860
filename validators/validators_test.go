package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserNameValidator(t *testing.T) {
	assert.NoError(t, UserNameValidator("bob"))
	assert.NoError(t, UserNameValidator("alice_2"))

	assert.ErrorIs(t, UserNameValidator(""), ErrUserNameEmpty)
	assert.ErrorIs(t, UserNameValidator("al"), ErrUserNameTooShort)
	assert.ErrorIs(t, UserNameValidator(strings.Repeat("a", 65)), ErrUserNameTooLong)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("secret12"))

	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestDisplayNameValidator(t *testing.T) {
	assert.NoError(t, DisplayNameValidator("Alice Liddell"))
	assert.ErrorIs(t, DisplayNameValidator(""), ErrDisplayNameEmpty)
}
