// Package application wires the soil calculator together: it builds the
// calculator, bed catalog, session storage, HTTP handlers and server from a
// resolved config, leaving the main package to CLI parsing and shutdown.
package application
