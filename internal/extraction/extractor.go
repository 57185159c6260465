package extraction

// DraftFields contains the normalized fields extracted from a receipt image.
// Field names match the JSON contract of POST /api/extract-receipt.
type DraftFields struct {
	Date     string  `json:"date"`   // ISO 8601 (YYYY-MM-DD)
	Amount   float64 `json:"amount"` // total including tax
	Tax      float64 `json:"tax"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

// Extractor defines the interface for receipt extraction providers
type Extractor interface {
	// ExtractReceipt analyzes a receipt image and returns normalized draft fields
	ExtractReceipt(imageData []byte, contentType string) (*DraftFields, error)
	// Close closes the extractor and releases resources
	Close() error
}
