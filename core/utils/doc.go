// Package utils converts loosely typed database values into the text form records
// are compared in.
package utils
