// Package backend is the HTTP client for the events REST backend and owns
// its wire types.
package backend
