package storage

import "uk-parliament-scraper/models"

// RecordWriter is the interface any export backend must satisfy. It
// returns the path of the artifact it produced.
type RecordWriter interface {
	WriteRecords(set *models.RecordSet, filename string) (string, error)
}
