package user

import (
	"errors"
	"net/http"
	"sync"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"
	"bitwise74/reelhub-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var errInvalidCredentials = apperr.New(apperr.Validation, "Invalid credentials")

// Unknown emails are checked against this hash so both failure paths
// take roughly the same time
var (
	dummyHashOnce sync.Once
	dummyHash     string
)

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data loginBody
	if err := d.Validator.BindJSON(c, &data, ""); err != nil {
		apperr.Respond(c, err)
		return
	}

	user, err := d.Store.Users.ByEmail(c.Request.Context(), validators.NormalizeEmail(data.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnHash(d, data.Password)
			apperr.Respond(c, errInvalidCredentials)
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Login failed", err))
		return
	}

	ok, err := d.Passwords.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Login failed", err))
		return
	}

	if !ok {
		zap.L().Debug("Wrong password", zap.String("userID", user.ID), zap.String("requestID", requestID))
		apperr.Respond(c, errInvalidCredentials)
		return
	}

	token, err := d.Tokens.Issue(model.Identity{ID: user.ID, Username: user.Username})
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Login failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
	})
}

func burnHash(d *internal.Deps, password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = d.Passwords.GenerateFromPassword("reelhub-dummy-password")
	})

	if dummyHash != "" {
		d.Passwords.VerifyPasswd(password, dummyHash)
	}
}
