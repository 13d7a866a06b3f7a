package service

import "errors"

// ErrInvalidCredentials is returned by Login when the username does not exist
// or the password does not match. The two cases are deliberately
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")
