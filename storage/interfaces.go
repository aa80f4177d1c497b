package storage

import "shopquery/models"

// RecordWriter is the interface any persistence backend for extracted
// listing records must satisfy. Writes are best effort from the
// pipeline's point of view: a failing store never fails the query.
type RecordWriter interface {
	Write(query string, records []models.ListingRecord) error
	Close() error
}
