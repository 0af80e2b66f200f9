package service

import "errors"

var (
	ErrRouterNotConfigured    = errors.New("router service not configured")
	ErrResponderNotConfigured = errors.New("responder service not configured")
	ErrNotSpecialist          = errors.New("role is not a specialist")
	ErrMalformedRouterReply   = errors.New("malformed router reply")
)
