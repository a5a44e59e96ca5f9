package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrUnorderedSeries = errors.New("price series timestamps must be strictly increasing")
	ErrUnknownStrategy = errors.New("unknown strategy")
)
