// Package main is the entry point of sciencemesh-admin, a fiber web service
// that keeps the ScienceMesh registration of a site in a single database row
// and serves the public feature settings read from the live configuration.
package main
