package batch

import (
	"fmt"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltStore", func() {
	var (
		tmpDir string
		dbPath string
		store  *BoltStore
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		store, err = NewBoltStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Append and List", func() {
		It("round-trips a receipt", func() {
			receipt := &Receipt{
				ID:       fmt.Sprintf("%020d", 1),
				Type:     TypePersonal,
				Date:     "2024-01-15",
				Category: "Food & Dining",
				Amount:   25.99,
				Tax:      2.1,
				Note:     "Cafe",
			}
			Expect(store.Append(receipt)).To(Succeed())

			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(1))
			Expect(receipts[0]).To(Equal(receipt))
		})

		It("preserves insertion order for time-ordered IDs", func() {
			for i := 1; i <= 3; i++ {
				receipt := &Receipt{ID: fmt.Sprintf("%020d", i), Type: TypePersonal, Date: "2024-01-15", Amount: float64(i)}
				Expect(store.Append(receipt)).To(Succeed())
			}
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(3))
			Expect(receipts[0].Amount).To(Equal(1.0))
			Expect(receipts[1].Amount).To(Equal(2.0))
			Expect(receipts[2].Amount).To(Equal(3.0))
		})

		It("survives a close and reopen", func() {
			Expect(store.Append(&Receipt{ID: fmt.Sprintf("%020d", 7), Date: "2024-01-15", Amount: 7})).To(Succeed())
			Expect(store.Close()).To(Succeed())

			reopened, err := NewBoltStore(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer reopened.Close()

			receipts, err := reopened.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(1))
			store = nil
		})
	})

	Describe("Remove", func() {
		BeforeEach(func() {
			for i := 1; i <= 2; i++ {
				Expect(store.Append(&Receipt{ID: fmt.Sprintf("%020d", i), Amount: float64(i)})).To(Succeed())
			}
		})

		It("removes an existing receipt", func() {
			Expect(store.Remove(fmt.Sprintf("%020d", 1))).To(Succeed())
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(1))
			Expect(receipts[0].Amount).To(Equal(2.0))
		})

		It("is a no-op for an unknown id", func() {
			Expect(store.Remove("unknown")).To(Succeed())
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(2))
		})
	})
})
