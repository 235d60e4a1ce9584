// Package models defines the tracked-user row and the pass summary types
// shared between the tracker engine, its HTTP surface, and the report
// archive.
package models
