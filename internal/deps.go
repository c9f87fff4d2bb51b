package internal

import (
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/security"
	"bitwise74/reelhub-api/pkg/validators"
	"bitwise74/reelhub-api/tmdb"
)

type Deps struct {
	Store     *store.Store
	Passwords security.PasswordHasher
	Tokens    *security.Tokens
	TMDB      *tmdb.Client
	Validator *validators.Validator
}
