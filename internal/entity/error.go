package entity

import (
	"errors"
)

var (
	ErrDataNotFound     = errors.New("data not found")
	ErrConflictingData  = errors.New("data conflicts with existing data in unique column")
	ErrCategoryInUse    = errors.New("category is referenced by existing items")
	ErrConfigPathNotSet = errors.New("CONFIG_PATH not set and -config flag not provided")
)
