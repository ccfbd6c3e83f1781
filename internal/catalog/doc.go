// Package catalog persists model records and vocabulary build reports in
// SQLite. The store is single-writer; concurrent readers are served through
// WAL mode.
package catalog
