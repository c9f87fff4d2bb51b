package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Favorite references a single movie or TV show saved by a user
type Favorite struct {
	MediaID   int       `json:"mediaId" bson:"mediaId"`
	MediaType MediaType `json:"mediaType" bson:"mediaType"`
}

// Favorites is embedded into the user document. Relational backends keep
// it in a single JSON column.
type Favorites []Favorite

// Contains reports whether the (media id, media type) pair is present
func (f Favorites) Contains(mediaID int, mediaType MediaType) bool {
	for _, v := range f {
		if v.MediaID == mediaID && v.MediaType == mediaType {
			return true
		}
	}

	return false
}

// Add appends the pair unless it is already present. The second return
// value is false when nothing changed.
func (f Favorites) Add(mediaID int, mediaType MediaType) (Favorites, bool) {
	if f.Contains(mediaID, mediaType) {
		return f, false
	}

	return append(f, Favorite{MediaID: mediaID, MediaType: mediaType}), true
}

// Remove filters the pair out. Removing a missing pair is not an error.
func (f Favorites) Remove(mediaID int, mediaType MediaType) (Favorites, bool) {
	out := make(Favorites, 0, len(f))
	for _, v := range f {
		if v.MediaID == mediaID && v.MediaType == mediaType {
			continue
		}

		out = append(out, v)
	}

	return out, len(out) != len(f)
}

// Value implements the driver.Valuer interface.
// The list is stored as a JSON array.
func (f Favorites) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]Favorite(f))
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (f *Favorites) Scan(value any) error {
	if value == nil {
		*f = Favorites{}
		return nil
	}

	var b []byte

	switch v := value.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("failed to scan Favorites, %v", value)
	}

	if len(b) == 0 {
		*f = Favorites{}
		return nil
	}

	var out []Favorite
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("failed to decode favorites, %w", err)
	}

	if out == nil {
		out = []Favorite{}
	}

	*f = out
	return nil
}
