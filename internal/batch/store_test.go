package batch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MemoryStore", func() {
	var store *MemoryStore

	BeforeEach(func() {
		store = NewMemoryStore()
	})

	Describe("Append and List", func() {
		It("starts empty", func() {
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(BeEmpty())
		})

		It("returns receipts in insertion order", func() {
			for _, id := range []string{"first", "second", "third"} {
				Expect(store.Append(&Receipt{ID: id})).To(Succeed())
			}
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(3))
			Expect(receipts[0].ID).To(Equal("first"))
			Expect(receipts[1].ID).To(Equal("second"))
			Expect(receipts[2].ID).To(Equal("third"))
		})

		It("returns a copy that later appends do not affect", func() {
			Expect(store.Append(&Receipt{ID: "a"})).To(Succeed())
			receipts, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(store.Append(&Receipt{ID: "b"})).To(Succeed())
			Expect(receipts).To(HaveLen(1))
		})
	})

	Describe("Remove", func() {
		BeforeEach(func() {
			for _, id := range []string{"a", "b", "c"} {
				Expect(store.Append(&Receipt{ID: id})).To(Succeed())
			}
		})

		When("the id exists", func() {
			It("removes only that receipt", func() {
				Expect(store.Remove("b")).To(Succeed())
				receipts, err := store.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(receipts).To(HaveLen(2))
				Expect(receipts[0].ID).To(Equal("a"))
				Expect(receipts[1].ID).To(Equal("c"))
			})
		})

		When("the id does not exist", func() {
			It("leaves contents and order unchanged", func() {
				Expect(store.Remove("missing")).To(Succeed())
				receipts, err := store.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(receipts).To(HaveLen(3))
				Expect(receipts[0].ID).To(Equal("a"))
				Expect(receipts[1].ID).To(Equal("b"))
				Expect(receipts[2].ID).To(Equal("c"))
			})
		})
	})
})
