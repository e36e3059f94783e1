package repository

import (
	"database/sql"
	"encoding/json"
)

// Genre tags are stored verbatim in a JSON column: there is no controlled
// vocabulary, duplicates are allowed and insertion order must survive a
// round trip.

// encodeGenres marshals a tag list for storage. A nil or empty list is
// stored as SQL NULL.
func encodeGenres(genres []string) (any, error) {
	if len(genres) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// decodeGenres unmarshals a stored tag list. NULL columns yield a nil slice.
func decodeGenres(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw.String), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
