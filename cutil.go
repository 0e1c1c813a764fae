// Package cutil provides small helpers for scraping web pages and storing
// what they return: an HTTP fetch-and-parse call with a single normalized
// error kind, file downloads, path sanitization and creation, JSON
// persistence, and terminal progress output.
//
// This package contains domain types, interfaces and pure helpers.
// Implementations live in subdirectories named after their primary
// dependency (e.g., http/, goquery/, sqlite/).
package cutil
