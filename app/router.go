package app

import (
	"fmt"
	"time"

	"bitwise74/reelhub-api/app/comment"
	"bitwise74/reelhub-api/app/favorite"
	"bitwise74/reelhub-api/app/media"
	"bitwise74/reelhub-api/app/rating"
	"bitwise74/reelhub-api/app/root"
	"bitwise74/reelhub-api/app/user"
	"bitwise74/reelhub-api/config"
	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/internal/store"
	"bitwise74/reelhub-api/pkg/middleware"
	"bitwise74/reelhub-api/pkg/security"
	"bitwise74/reelhub-api/pkg/validators"
	"bitwise74/reelhub-api/tmdb"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDeps builds the handler dependencies around an opened store
func NewDeps(cfg *config.Config, s *store.Store) (*internal.Deps, error) {
	passwords, err := security.NewPasswords(cfg.Security.PasswordHash, cfg.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to set up password hashing, %w", err)
	}

	return &internal.Deps{
		Store:     s,
		Passwords: passwords,
		Tokens:    security.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL),
		TMDB: tmdb.New(tmdb.Options{
			APIKey:   cfg.TMDB.APIKey,
			BaseURL:  cfg.TMDB.BaseURL,
			Language: cfg.TMDB.Language,
			Timeout:  cfg.TMDB.Timeout,
		}),
		Validator: validators.New(),
	}, nil
}

func NewRouter(cfg *config.Config, d *internal.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.Host.CorsOrigins,
			AllowMethods:     []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.BodySizeLimiter(cfg.Host.MaxBodySize),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	var users middleware.UserFinder
	if cfg.Auth.CheckUserExists {
		users = d.Store.Users
	}

	auth := middleware.NewAuthMiddleware(d.Tokens, users)

	register := []gin.HandlerFunc{}
	if cfg.Turnstile.Enabled {
		register = append(register, middleware.NewTurnstileMiddleware(cfg.Turnstile.SecretToken, cfg.Turnstile.VerifyURL, nil))
	}

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
		m.GET("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a bearer token
		m.GET("/validate", auth, root.Validate)

		// GET /api/search?q=		-> Multi search over movies, shows and people
		m.GET("/search", func(c *gin.Context) { media.Search(c, d) })
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register	-> Registers a new user
		a.POST("/register", append(register, func(c *gin.Context) { user.UserRegister(c, d) })...)

		// POST /api/auth/login		-> Logs in a user and returns a bearer token
		a.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/auth/me		-> Returns the account of the token's user
		a.GET("/me", auth, func(c *gin.Context) { user.UserFetch(c, d) })

		// DELETE /api/auth/me		-> Deletes the account with its ratings and comments
		a.DELETE("/me", auth, func(c *gin.Context) { user.UserDelete(c, d) })
	}

	f := m.Group("/users/favorites", auth)
	{
		// GET /api/users/favorites	-> Lists the user's favorites
		f.GET("", func(c *gin.Context) { favorite.FavoriteList(c, d) })

		// POST /api/users/favorites	-> Adds a favorite
		f.POST("", func(c *gin.Context) { favorite.FavoriteAdd(c, d) })

		// DELETE /api/users/favorites/:mediaId/:mediaType -> Removes a favorite
		f.DELETE("/:mediaId/:mediaType", func(c *gin.Context) { favorite.FavoriteRemove(c, d) })
	}

	r := m.Group("/ratings")
	{
		// POST /api/ratings		-> Creates or overwrites the user's rating
		r.POST("", auth, func(c *gin.Context) { rating.RatingUpsert(c, d) })

		// GET /api/ratings/:mediaType/:mediaId	-> Average and count of a media item
		r.GET("/:mediaType/:mediaId", func(c *gin.Context) { rating.RatingSummary(c, d) })

		// GET /api/ratings/:mediaType/:mediaId/me -> The user's own rating
		r.GET("/:mediaType/:mediaId/me", auth, func(c *gin.Context) { rating.RatingFetchOwn(c, d) })
	}

	cm := m.Group("/comments")
	{
		// POST /api/comments		-> Adds a comment
		cm.POST("", auth, func(c *gin.Context) { comment.CommentCreate(c, d) })

		// GET /api/comments/:mediaType/:mediaId -> Comments of a media item, newest first
		cm.GET("/:mediaType/:mediaId", func(c *gin.Context) { comment.CommentList(c, d) })

		// DELETE /api/comments/:id	-> Deletes a comment written by the user
		cm.DELETE("/:id", auth, func(c *gin.Context) { comment.CommentDelete(c, d) })
	}

	mv := m.Group("/movies")
	{
		mv.GET("/popular", func(c *gin.Context) { media.Popular(c, d, media.Movie) })
		mv.GET("/top-rated", func(c *gin.Context) { media.TopRated(c, d, media.Movie) })
		mv.GET("/:id/trailer", func(c *gin.Context) { media.Trailer(c, d, media.Movie) })
		mv.GET("/:id/details", func(c *gin.Context) { media.Details(c, d, media.Movie) })
		mv.GET("/:id/credits", func(c *gin.Context) { media.Credits(c, d, media.Movie) })
	}

	tv := m.Group("/tv")
	{
		tv.GET("/popular", func(c *gin.Context) { media.Popular(c, d, media.TV) })
		tv.GET("/top-rated", func(c *gin.Context) { media.TopRated(c, d, media.TV) })
		tv.GET("/:id/trailer", func(c *gin.Context) { media.Trailer(c, d, media.TV) })
		tv.GET("/:id/details", func(c *gin.Context) { media.Details(c, d, media.TV) })
		tv.GET("/:id/credits", func(c *gin.Context) { media.Credits(c, d, media.TV) })
	}

	p := m.Group("/people")
	{
		p.GET("/popular", func(c *gin.Context) { media.Popular(c, d, media.Person) })
		p.GET("/:id/details", func(c *gin.Context) { media.Details(c, d, media.Person) })
		p.GET("/:id/credits", func(c *gin.Context) { media.PersonCredits(c, d) })
	}

	return router
}
