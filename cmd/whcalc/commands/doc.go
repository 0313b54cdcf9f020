// Package commands implements the whcalc CLI, an offline front end to the
// warehouse model. Every subcommand reads an optional scenario file
// (--scenario, JSON or YAML) over the default parameters and prints JSON or
// CSV to stdout. Warnings and logs go to stderr.
package commands
