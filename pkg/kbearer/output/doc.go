// Package output renders kbearer command results as text tables, JSON or YAML.
package output
