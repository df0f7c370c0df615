// Package model defines the core data types shared across tabgo packages:
// typed cell values, dataset records, and the column mapping that projects a
// cleaned table into records.
package model
