// Package daemon wires the database, sessions, the settings store and the
// web service together and runs them until the process is told to stop.
package daemon
