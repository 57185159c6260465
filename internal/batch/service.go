package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrisdevelops/receipt-to-spendee-to-csv/internal/extraction"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using zero-padded UnixNano timestamps.
// The padding keeps IDs byte-sortable in insertion order for BoltStore.
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%020d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// ValidationError reports the required fields missing from a draft on
// acceptance. The batch is never mutated when acceptance fails.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Service manages the batch of accepted receipts
type Service struct {
	store       Store
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(store Store) *Service {
	return &Service{
		store:       store,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(store Store, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		store:       store,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// StageDraft produces an editable draft pre-filled from extracted fields,
// with a fresh ID and the selected receipt type. Staging never mutates
// the batch.
func (s *Service) StageDraft(fields *extraction.DraftFields, receiptType ReceiptType) *Draft {
	date := fields.Date
	if date == "" {
		date = s.timeSource.Now().Format("2006-01-02")
	}

	return &Draft{
		ID:       s.idGenerator.Generate(),
		Type:     receiptType,
		Date:     date,
		Category: fields.Category,
		Amount:   fields.Amount,
		Tax:      fields.Tax,
		Note:     fields.Note,
	}
}

// AcceptDraft validates a draft and appends the resulting receipt to the
// batch. Date and amount are required; everything else falls back to the
// same defaults used during extraction. This is the only path by which a
// receipt enters the batch.
func (s *Service) AcceptDraft(draft *Draft) (*Receipt, error) {
	var missing []string
	if strings.TrimSpace(draft.Date) == "" {
		missing = append(missing, "date")
	}
	if draft.Amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	id := draft.ID
	if id == "" {
		id = s.idGenerator.Generate()
	}

	receiptType := draft.Type
	if receiptType == "" {
		receiptType = TypePersonal
	}

	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = "Uncategorized"
	}

	receipt := &Receipt{
		ID:       id,
		Type:     receiptType,
		Date:     draft.Date,
		Category: category,
		Amount:   draft.Amount,
		Tax:      draft.Tax,
		Note:     truncateNote(draft.Note),
		RawText:  draft.RawText,
		ImageURL: draft.ImageURL,
	}

	if err := s.store.Append(receipt); err != nil {
		return nil, fmt.Errorf("appending receipt to batch: %w", err)
	}

	return receipt, nil
}

// Remove deletes a receipt from the batch by ID. Removing an unknown ID is
// a no-op and does not affect the order of the remaining receipts.
func (s *Service) Remove(id string) error {
	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("removing receipt from batch: %w", err)
	}
	return nil
}

// List returns all receipts in insertion order
func (s *Service) List() ([]*Receipt, error) {
	receipts, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// Partition returns the receipts of one type, preserving insertion order
func (s *Service) Partition(receiptType ReceiptType) ([]*Receipt, error) {
	receipts, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	partition := make([]*Receipt, 0)
	for _, r := range receipts {
		if r.Type == receiptType {
			partition = append(partition, r)
		}
	}
	return partition, nil
}

// ExportCSV serializes one partition as a Spendee CSV document and returns
// the document together with its download filename. Returns
// ErrNothingToExport when the partition is empty; no document is produced.
func (s *Service) ExportCSV(receiptType ReceiptType) ([]byte, string, error) {
	partition, err := s.Partition(receiptType)
	if err != nil {
		return nil, "", err
	}

	data, err := MarshalSpendeeCSV(partition)
	if err != nil {
		return nil, "", err
	}

	return data, SpendeeFilename(receiptType), nil
}

// truncateNote caps a note at 100 characters, counted in runes so multibyte
// text is never split mid-character.
func truncateNote(note string) string {
	runes := []rune(note)
	if len(runes) <= 100 {
		return note
	}
	return string(runes[:100])
}
