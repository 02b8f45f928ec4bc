package services

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderItemNotFound     = errors.New("order item not found")
	ErrItemAlreadyDelivered  = errors.New("order item already delivered")
	ErrTableNotFound         = errors.New("table not found")
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrDuplicateTableNumber  = errors.New("table number already in use")
	ErrProductNotFound       = errors.New("product not found")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidRole           = errors.New("invalid role")
)
