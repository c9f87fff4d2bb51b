// Package media contains the handlers proxying TMDb metadata to the client
package media

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bitwise74/reelhub-api/internal"
	"bitwise74/reelhub-api/pkg/apperr"
	"bitwise74/reelhub-api/tmdb"

	"github.com/gin-gonic/gin"
)

// Kind is the TMDb path segment of a resource
type Kind string

const (
	Movie  Kind = "movie"
	TV     Kind = "tv"
	Person Kind = "person"
)

const msgFetchFailed = "Failed to fetch data from TMDb"

var detailsFailed = map[Kind]string{
	Movie:  "Failed to fetch movie details",
	TV:     "Failed to fetch TV show details",
	Person: "Failed to fetch person details",
}

// Popular relays /{kind}/popular
func Popular(c *gin.Context, d *internal.Deps, kind Kind) {
	page(c, d, fmt.Sprintf("/%s/popular", kind))
}

// TopRated relays /{kind}/top_rated
func TopRated(c *gin.Context, d *internal.Deps, kind Kind) {
	page(c, d, fmt.Sprintf("/%s/top_rated", kind))
}

// Trailer responds with the key of the first YouTube trailer or null
func Trailer(c *gin.Context, d *internal.Deps, kind Kind) {
	id, ok := mediaID(c)
	if !ok {
		return
	}

	key, err := d.TMDB.TrailerKey(c.Request.Context(), string(kind), id)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, "Failed to fetch trailer", err))
		return
	}

	var trailerKey *string
	if key != "" {
		trailerKey = &key
	}

	c.JSON(http.StatusOK, gin.H{
		"trailerKey": trailerKey,
	})
}

func Details(c *gin.Context, d *internal.Deps, kind Kind) {
	id, ok := mediaID(c)
	if !ok {
		return
	}

	body, err := d.TMDB.Raw(c.Request.Context(), fmt.Sprintf("/%s/%d", kind, id), nil)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, detailsFailed[kind], err))
		return
	}

	raw(c, body)
}

// Credits relays the cast and crew of a movie or show
func Credits(c *gin.Context, d *internal.Deps, kind Kind) {
	id, ok := mediaID(c)
	if !ok {
		return
	}

	body, err := d.TMDB.Raw(c.Request.Context(), fmt.Sprintf("/%s/%d/credits", kind, id), nil)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, msgFetchFailed, err))
		return
	}

	raw(c, body)
}

// PersonCredits responds with the cast array of a person's combined credits
func PersonCredits(c *gin.Context, d *internal.Deps) {
	id, ok := mediaID(c)
	if !ok {
		return
	}

	cast, err := d.TMDB.PersonCast(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, "Failed to fetch person credits", err))
		return
	}

	c.JSON(http.StatusOK, cast)
}

// Search responds with the results array of a multi search on q
func Search(c *gin.Context, d *internal.Deps) {
	q := c.Query("q")
	if q == "" {
		apperr.Respond(c, apperr.New(apperr.Validation, "Missing search query"))
		return
	}

	results, err := d.TMDB.Search(c.Request.Context(), q, pageParam(c))
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, "Failed to fetch search results", err))
		return
	}

	c.JSON(http.StatusOK, results)
}

func page(c *gin.Context, d *internal.Deps, path string) {
	body, err := d.TMDB.Page(c.Request.Context(), path, pageParam(c))
	if err != nil {
		apperr.Respond(c, apperr.Wrap(apperr.Upstream, msgFetchFailed, err))
		return
	}

	raw(c, body)
}

// pageParam returns the page query value, "1" when it is absent or empty
func pageParam(c *gin.Context) string {
	if p := c.Query("page"); p != "" {
		return p
	}

	return "1"
}

func mediaID(c *gin.Context) (int, bool) {
	id, ok := tmdb.ParseID(c.Param("id"))
	if !ok {
		apperr.Respond(c, apperr.New(apperr.Validation, "Invalid ID"))
	}

	return id, ok
}

func raw(c *gin.Context, body json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
