// Package service implements the application's use cases on top of the
// store interfaces: registration and login, profile updates, and the
// ownership-scoped contact and address operations. Every read and mutation
// re-derives the User -> Contact -> Address ownership chain from current
// storage state; ownership is never cached or inferred.
package service
