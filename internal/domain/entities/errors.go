package entities

import "errors"

// ErrNotFound indicates a referenced entity, approval, or document is absent.
var ErrNotFound = errors.New("not found")

// ErrInvalidState indicates an operation against an entity whose status
// forbids it, such as submitting an approved document.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrForbidden indicates the actor lacks the required role or ownership.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates malformed input, such as an unknown decision status.
var ErrValidation = errors.New("validation failed")

// ErrDependency indicates a store or the role directory is unreachable.
var ErrDependency = errors.New("dependency failure")

// ErrNoApprovers indicates submission found no users holding an approver role
// for the entity type. Submitting anyway would strand the entity pending
// forever, so the engine refuses.
var ErrNoApprovers = errors.New("no eligible approvers configured")

// ErrMalformedVersion indicates a document version string is not a
// well-formed "major.minor" pair.
var ErrMalformedVersion = errors.New("malformed version string")
