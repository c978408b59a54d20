package service

import "errors"

// ErrEmptyCredentialName is returned when a credential operation is called
// with an empty name.
var ErrEmptyCredentialName = errors.New("credential name is empty")
