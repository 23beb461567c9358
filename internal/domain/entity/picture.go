package entity

import "time"

// Picture es un activo de media (avatar de cliente) con su binario.
type Picture struct {
	ID           int64
	MimeType     string
	SeoFilename  string
	Binary       []byte
	UpdatedOnUTC time.Time
}
