// Package cli implements the plugboard command-line interface.
package cli
