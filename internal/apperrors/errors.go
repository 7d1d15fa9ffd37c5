package apperrors

import "errors"

// ErrNotFound indicates that a referenced resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidAmount indicates a monetary amount that is unparsable, has more than
// two fraction digits, or is not strictly positive.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrMissingPosField indicates a POS collection request missing the field its
// chosen mode requires (net or gross).
var ErrMissingPosField = errors.New("missing required POS field")

// ErrInactiveReference indicates a referenced entity exists but is disabled.
var ErrInactiveReference = errors.New("referenced resource is inactive")

// ErrAttachmentRequired indicates a check operation that requires at least one
// attached document was called without one.
var ErrAttachmentRequired = errors.New("at least one attachment is required")

// ErrAlreadyPaid indicates an attempt to settle a check that is already paid.
var ErrAlreadyPaid = errors.New("check is already paid")

// ErrInvalidTransition indicates a check lifecycle precondition violation not
// covered by a more specific error.
var ErrInvalidTransition = errors.New("invalid check state transition")
