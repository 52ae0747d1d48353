package password

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashProducesSelfDescribingSaltedHash(t *testing.T) {
	h1, err := Hash("s3cret")
	require.NoError(t, err)
	h2, err := Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h1, "$2"), "expected bcrypt tag, got %q", h1)
	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
	assert.NotContains(t, h1, "s3cret")
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyBcrypt(t *testing.T) {
	h, err := Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, Verify("correct horse", h))
	assert.False(t, Verify("correct horsE", h))
	assert.False(t, Verify("", h))
}

// werkzeugHash builds a hash the way werkzeug's generate_password_hash does.
func werkzeugHash(password, salt string, iterations int) string {
	dk := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return "pbkdf2:sha256:" + strconv.Itoa(iterations) + "$" + salt + "$" + hex.EncodeToString(dk)
}

func TestVerifyLegacyPBKDF2(t *testing.T) {
	stored := werkzeugHash("hunter2", "Qm9vdHN0cmFw1234", 1000)

	assert.True(t, Verify("hunter2", stored))
	assert.False(t, Verify("hunter3", stored))
}

func TestVerifyMalformedNeverMatches(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$2a$10$short",
		"pbkdf2:sha256:1000",
		"pbkdf2:sha256:1000$salt",
		"pbkdf2:sha256:notanumber$salt$abcd",
		"pbkdf2:sha256:0$salt$abcd",
		"pbkdf2:md5:1000$salt$abcd",
		"pbkdf2:sha256:1000$salt$zz-not-hex",
		"pbkdf2:sha256:1000$$abcd",
		"scrypt:32768:8:1$salt$abcd",
	}
	for _, c := range cases {
		assert.False(t, Verify("anything", c), "hash %q must not verify", c)
	}
}
