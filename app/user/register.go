package user

import (
	"errors"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/apperr"
	"bitwise74/reelhub-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"password"`
}

var (
	errEmailTaken    = apperr.New(apperr.Conflict, "Email already registered")
	errUsernameTaken = apperr.New(apperr.Conflict, "Username already taken")
)

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	ctx := c.Request.Context()

	var data registerBody
	if err := d.Validator.BindJSON(c, &data, ""); err != nil {
		apperr.Respond(c, err)
		return
	}

	email := validators.NormalizeEmail(data.Email)

	if _, err := d.Store.Users.ByEmail(ctx, email); err == nil {
		apperr.Respond(c, errEmailTaken)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		apperr.Respond(c, err)
		return
	}

	if _, err := d.Store.Users.ByUsername(ctx, data.Username); err == nil {
		apperr.Respond(c, errUsernameTaken)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		apperr.Respond(c, err)
		return
	}

	hash, err := d.Passwords.GenerateFromPassword(data.Password)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Registration failed", err))
		return
	}

	u := &model.User{
		Username:     data.Username,
		Email:        email,
		PasswordHash: hash,
		Favorites:    model.Favorites{},
	}

	if err := d.Store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost a race against a concurrent registration
			if _, err := d.Store.Users.ByEmail(ctx, email); err == nil {
				apperr.Respond(c, errEmailTaken)
				return
			}

			apperr.Respond(c, errUsernameTaken)
			return
		}

		apperr.Respond(c, apperr.Wrap(apperr.Internal, "Registration failed", err))
		return
	}

	zap.L().Info("User registered", zap.String("userID", u.ID), zap.String("requestID", requestID))

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}
