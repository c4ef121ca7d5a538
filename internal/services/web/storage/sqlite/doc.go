// Package sqlite provides the festival persistence adapter backed by SQLite.
package sqlite
