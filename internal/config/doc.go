// Package config provides configuration structures and utilities for
// eolallowlist. It defines the defaults used when nothing else is given
// (the endoflife.date API root, request timeout and delay, output file
// names), validation of the final configuration, and loading of the
// optional YAML configuration file.
//
// Precedence, lowest first: defaults, configuration file, command-line flags.
package config
