// Package model defines the documents persisted by the store
package model

type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

// Valid reports whether t is one of the media kinds TMDb ids refer to
func (t MediaType) Valid() bool {
	return t == Movie || t == TV
}
