// Package errors provides structured, coded errors for the weft runtime.
//
// Every fatal diagnostic has a stable E-code registered in registry.go so
// messages stay consistent across the runtime, the server, and the CLI.
package errors
