// Package uniuri generates random strings from crypto/rand for session ids
// and bootstrap passwords.
package uniuri
