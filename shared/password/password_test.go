package password_test

import (
	"strings"
	"testing"

	"campusroom/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))

	again, err := password.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salt must differ between hashes")

	_, err = password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	_, err = password.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, password.ErrPasswordTooLong)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("s3cret-lab")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hashed  string
		wantErr error
	}{
		{name: "match", plain: "s3cret-lab", hashed: hashed},
		{name: "mismatch", plain: "S3cret-lab", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hashed: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "s3cret-lab", hashed: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	err = password.Verify("s3cret-lab", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}

func TestNeedsRehash(t *testing.T) {
	current, err := password.Hash("lecturer")
	require.NoError(t, err)
	assert.False(t, password.NeedsRehash(current))

	cheap, err := bcrypt.GenerateFromPassword([]byte("lecturer"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, password.NeedsRehash(string(cheap)))

	assert.True(t, password.NeedsRehash("garbage"))
}
