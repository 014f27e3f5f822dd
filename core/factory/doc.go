// Package factory provides a small generic registry for config-driven module
// construction. Sinks and other pluggable components register a constructor
// under a type name; configuration selects implementations by that name.
package factory
