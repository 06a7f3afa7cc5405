// Package storage defines persistence contracts for directory users.
package storage
