package repositories

import "errors"

// ErrNotFound is returned by Mongo-backed repositories when no document
// matches. GORM-backed repositories return gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("not found")
