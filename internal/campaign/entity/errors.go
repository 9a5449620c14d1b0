package entity

import "errors"

var (
	ErrSaveNotFound = errors.New("campaign save not found")
	ErrCorruptSave  = errors.New("campaign save corrupt")
	ErrInvalidSlot  = errors.New("invalid save slot")
)
