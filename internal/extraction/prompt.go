package extraction

// extractPrompt is the shared instruction used by all providers. It names the
// five target fields, their types, and the per-field fallback policy.
const extractPrompt = `Extract receipt information from this image and return it as a JSON object with the following structure:
{
  "date": "YYYY-MM-DD format, or empty string if not found",
  "amount": number (total amount including tax, 0 if not found),
  "tax": number (tax amount, 0 if not found or cannot be calculated),
  "category": "string (suggest a category like 'Food & Dining', 'Transportation', 'Health', 'Business', 'Shopping', etc. based on the receipt content, or 'Uncategorized' if unclear)",
  "note": "string (brief description, merchant name, or first line of receipt, max 100 characters)"
}

Important:
- Extract the date in YYYY-MM-DD format. If only partial date info is available, use today's date as fallback.
- The amount should be the total amount paid (including tax).
- Tax should be the tax amount separately if visible, otherwise calculate as: total - subtotal, or 0 if not determinable.
- Category should be inferred from the merchant name or items on the receipt.
- Note should be a brief, useful description (merchant name, location, or key items).
- Return ONLY valid JSON, no other text.`
