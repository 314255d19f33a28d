package email

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmailValid(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "first.last@sub.example.org"}
	invalid := []string{"", "a@x", "no-at.com", "Alice <a@x.com>", "a@"}

	for _, e := range valid {
		assert.True(t, IsEmailValid(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsEmailValid(e), e)
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mailinator.com", Domain("bob@Mailinator.COM"))
	assert.Equal(t, "", Domain("nobody"))
}

func TestGenerateBodyFromHTML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"verify.html": {Data: []byte(`<a href="{{.Link}}">verify</a>`)},
	}

	in := SendEmailInput{To: "a@x.com", Subject: "Email Verification"}
	require.NoError(t, in.GenerateBodyFromHTML(fsys, "verify.html", struct{ Link string }{"https://app/verify-email?token=a&b"}))

	assert.Contains(t, in.Body, `href="https://app/verify-email?token=a&amp;b"`)
	assert.NoError(t, in.Validate())

	assert.Error(t, in.GenerateBodyFromHTML(fsys, "missing.html", nil))
}

func TestSendEmailInput_Validate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, (&SendEmailInput{Subject: "s", Body: "b"}).Validate(), ErrEmptyRecipient)
	assert.ErrorIs(t, (&SendEmailInput{To: "a@x.com", Body: "b"}).Validate(), ErrEmptyContent)
	assert.ErrorIs(t, (&SendEmailInput{To: "bad", Subject: "s", Body: "b"}).Validate(), ErrInvalidRecipient)
	assert.NoError(t, (&SendEmailInput{To: "a@x.com", Subject: "s", Body: "b"}).Validate())
}
