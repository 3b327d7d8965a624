// Package analytics turns snapshots of users, events, fests and registrations into
// dashboard view-models. Everything here is pure: no I/O, no clock reads, no
// shared state. The caller supplies now.
package analytics
