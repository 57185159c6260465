package batch

import "fmt"

// ReceiptType partitions the batch. Assigned when a draft is staged and
// fixed once the receipt is accepted.
type ReceiptType string

const (
	TypePersonal ReceiptType = "personal"
	TypeBusiness ReceiptType = "business"
)

// ParseReceiptType validates a receipt type string
func ParseReceiptType(s string) (ReceiptType, error) {
	switch ReceiptType(s) {
	case TypePersonal, TypeBusiness:
		return ReceiptType(s), nil
	default:
		return "", fmt.Errorf("invalid receipt type: %q", s)
	}
}

// Receipt is an accepted record in the batch
type Receipt struct {
	ID       string      `json:"id"`
	Type     ReceiptType `json:"type"`
	Date     string      `json:"date"` // ISO 8601 (YYYY-MM-DD)
	Category string      `json:"category"`
	Amount   float64     `json:"amount"` // total including tax
	Tax      float64     `json:"tax"`
	Note     string      `json:"note"`
	RawText  string      `json:"rawText,omitempty"`
	ImageURL string      `json:"imageUrl,omitempty"`
}

// Draft is a staged, user-editable receipt record. It never enters the
// batch directly; AcceptDraft is the only insertion path.
type Draft struct {
	ID       string      `json:"id"`
	Type     ReceiptType `json:"type"`
	Date     string      `json:"date"`
	Category string      `json:"category"`
	Amount   float64     `json:"amount"`
	Tax      float64     `json:"tax"`
	Note     string      `json:"note"`
	RawText  string      `json:"rawText,omitempty"`
	ImageURL string      `json:"imageUrl,omitempty"`
}
