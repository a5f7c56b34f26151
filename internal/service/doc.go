// Package service provides application-level services for enrollment,
// progress tracking, catalog reads, and search.
package service
