package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitwise74/reelhub-api/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"password"`
}

type media struct {
	MediaID   int    `json:"mediaId" validate:"gt=0"`
	MediaType string `json:"mediaType" validate:"mediatype"`
	Rating    int    `json:"rating" validate:"gte=1,lte=10"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"valid signup", signup{"alice", "a@x.io", "Pw1!"}, ""},
		{"missing username", signup{"", "a@x.io", "Pw1!"}, "username is required"},
		{"short username", signup{"al", "a@x.io", "Pw1!"}, "username must be at least 3 characters"},
		{"bad email", signup{"alice", "not-an-email", "Pw1!"}, "email must be a valid email address"},
		{"display name email", signup{"alice", "Alice <a@x.io>", "Pw1!"}, "email must be a valid email address"},
		{"empty password", signup{"alice", "a@x.io", ""}, "password must be between 1 and 72 bytes long"},
		{"long password", signup{"alice", "a@x.io", strings.Repeat("x", 73)}, "password must be between 1 and 72 bytes long"},
		{"valid media", media{550, "movie", 8}, ""},
		{"zero id", media{0, "movie", 8}, "mediaId must be greater than 0"},
		{"bad type", media{550, "book", 8}, "mediaType must be movie or tv"},
		{"rating too high", media{550, "tv", 11}, "rating must be less than or equal to 10"},
		{"rating too low", media{550, "tv", 0}, "rating must be greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("foo"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("alice@example.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestPasswordValidator(t *testing.T) {
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 73)), ErrPasswordTooLong)
	assert.NoError(t, PasswordValidator(strings.Repeat("a", 72)))
	assert.NoError(t, PasswordValidator("Pw1!"))
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := New()

	bind := func(body, msg string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var dst media
		return v.BindJSON(c, &dst, msg)
	}

	assert.NoError(t, bind(`{"mediaId":1,"mediaType":"tv","rating":5}`, ""))

	err := bind(`{"mediaId":1,"mediaType":"book","rating":5}`, "")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.EqualError(t, err, "validation: mediaType must be movie or tv: mediaType must be movie or tv")

	err = bind(`{"mediaId":"abc"}`, "Missing media ID or type")
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Missing media ID or type", ae.Message)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"mediaId":1,"mediaType":"tv","rating":5}`))
	c.Request.Body = http.MaxBytesReader(nil, c.Request.Body, 4)
	err = v.BindJSON(c, &media{}, "")
	assert.Equal(t, apperr.TooLarge, apperr.KindOf(err))
}
