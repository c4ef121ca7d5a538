// Package storage declares persistence contracts for festival records:
// program (events and performers), public submissions (registrations,
// tickets, donations), gate check-ins, the admin audit log and admin users.
package storage
