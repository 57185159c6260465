package extraction

import (
	"encoding/json"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

var _ = Describe("OpenAI", func() {
	var (
		upstream  *ghttp.Server
		extractor *OpenAI
		imageData []byte
		draft     *DraftFields
		err       error
	)

	// A 1x1 PNG so image preparation passes the payload through untouched
	pngData := []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	}

	BeforeEach(func() {
		upstream = ghttp.NewServer()
		extractor, err = NewOpenAI("test-key", "gpt-4o-mini", upstream.URL())
		Expect(err).NotTo(HaveOccurred())
		imageData = pngData
	})

	AfterEach(func() {
		upstream.Close()
	})

	JustBeforeEach(func() {
		draft, err = extractor.ExtractReceipt(imageData, "image/png")
	})

	When("the provider returns a complete JSON draft", func() {
		BeforeEach(func() {
			upstream.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/v1/chat/completions"),
				ghttp.VerifyHeaderKV("Authorization", "Bearer test-key"),
				ghttp.VerifyContentType("application/json"),
				func(w http.ResponseWriter, r *http.Request) {
					var req map[string]any
					Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
					Expect(req["model"]).To(Equal("gpt-4o-mini"))
					Expect(req["max_tokens"]).To(BeEquivalentTo(500))
					Expect(req["response_format"]).To(Equal(map[string]any{"type": "json_object"}))

					messages := req["messages"].([]any)
					Expect(messages).To(HaveLen(1))
					content := messages[0].(map[string]any)["content"].([]any)
					Expect(content).To(HaveLen(2))
					imagePart := content[1].(map[string]any)
					url := imagePart["image_url"].(map[string]any)["url"].(string)
					Expect(url).To(HavePrefix("data:image/png;base64,"))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, completionResponse(
					`{"date": "2024-01-05", "amount": 12.5, "tax": 1.1, "category": "Food & Dining", "note": "Cafe"}`,
				)),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the normalized draft", func() {
			Expect(draft.Date).To(Equal("2024-01-05"))
			Expect(draft.Amount).To(Equal(12.5))
			Expect(draft.Tax).To(Equal(1.1))
			Expect(draft.Category).To(Equal("Food & Dining"))
			Expect(draft.Note).To(Equal("Cafe"))
		})
	})

	When("the API key is not configured", func() {
		BeforeEach(func() {
			extractor, err = NewOpenAI("", "", upstream.URL())
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns a configuration error without calling upstream", func() {
			var cfgErr *ConfigError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Error()).To(Equal("OPENAI_API_KEY not configured"))
			Expect(upstream.ReceivedRequests()).To(BeEmpty())
		})
	})

	When("the provider returns empty content", func() {
		BeforeEach(func() {
			upstream.AppendHandlers(
				ghttp.RespondWithJSONEncoded(http.StatusOK, completionResponse("")),
			)
		})

		It("returns a no-content error", func() {
			Expect(err).To(MatchError(ErrNoContent))
		})
	})

	When("the provider returns no choices", func() {
		BeforeEach(func() {
			upstream.AppendHandlers(
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{"choices": []any{}}),
			)
		})

		It("returns a no-content error", func() {
			Expect(err).To(MatchError(ErrNoContent))
		})
	})

	When("the provider returns non-JSON content", func() {
		BeforeEach(func() {
			upstream.AppendHandlers(
				ghttp.RespondWithJSONEncoded(http.StatusOK, completionResponse("sorry, I cannot help with that")),
			)
		})

		It("returns a bad-response error", func() {
			Expect(err).To(MatchError(ErrBadResponse))
		})
	})

	When("the provider returns an HTTP error", func() {
		BeforeEach(func() {
			upstream.AppendHandlers(
				ghttp.RespondWith(http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`),
			)
		})

		It("returns an upstream error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("status 429"))
		})

		It("is not a bad-response error", func() {
			Expect(err).NotTo(MatchError(ErrBadResponse))
		})
	})
})
