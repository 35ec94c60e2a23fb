// Package repositories holds the error values shared by every repository
// and its stores.
package repositories

import (
	"errors"
)

var ErrNotFound = errors.New("record not found")
