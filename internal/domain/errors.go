package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Plant errors
	ErrMsgAlreadyGrowing = "already growing a plant"
	ErrMsgNoActivePlant  = "not growing a plant"
	ErrMsgUnknownPlant   = "unknown plant"

	// Product errors
	ErrMsgUnknownProduct = "unknown product"
	ErrMsgOutOfStock     = "out of stock"

	// Ledger errors
	ErrMsgInsufficientPoints = "insufficient points"
	ErrMsgInvalidAmount      = "invalid amount"
	ErrMsgNoExternalAccount  = "no external account"

	// System errors
	ErrMsgPersistence    = "persistence failed"
	ErrMsgInvalidCatalog = "invalid catalog"
	ErrMsgInvalidInput   = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrAlreadyGrowing = errors.New(ErrMsgAlreadyGrowing)
	ErrNoActivePlant  = errors.New(ErrMsgNoActivePlant)
	ErrUnknownPlant   = errors.New(ErrMsgUnknownPlant)

	ErrUnknownProduct = errors.New(ErrMsgUnknownProduct)
	ErrOutOfStock     = errors.New(ErrMsgOutOfStock)

	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)
	ErrInvalidAmount      = errors.New(ErrMsgInvalidAmount)
	ErrNoExternalAccount  = errors.New(ErrMsgNoExternalAccount)

	ErrPersistence    = errors.New(ErrMsgPersistence)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)
	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)
)
