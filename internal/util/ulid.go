package util

import "github.com/oklog/ulid/v2"

// NewULID returns a new lexically sortable id. ulid.Make is safe for
// concurrent use.
func NewULID() string {
	return ulid.Make().String()
}
