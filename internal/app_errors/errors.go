package app_errors

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrAssignmentNotFound = errors.New("assignment not found")
var ErrBidNotFound = errors.New("bid not found")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrForbidden = errors.New("insufficient permissions")
var ErrAssignmentUnavailable = errors.New("assignment not available for bidding")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBidNotPending = errors.New("bid is not pending")
