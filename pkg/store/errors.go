package store

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	ErrSpent       = errors.New("output already spent")
	ErrOutRefInUse = errors.New("output reference already exists")
)
