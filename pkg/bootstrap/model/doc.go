// Package model holds the types shared between the bootstrap registry and
// its initialization options (measure, drawer).
package model
