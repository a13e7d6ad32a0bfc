package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/axelwave/dealerscout/core"
)

const rationaleSystemPrompt = `You are a business research assistant for a software vendor.
Write factual, specific rationales for why a company is a relevant prospect.
Respond with 2-3 sentences of plain prose. No lists, no preamble.`

const customerPromptTemplate = `Why would %s be a good customer for %s?

Vendor:
- Product: %s
- Description: %s

Company: %s
Category: %s
Description: %s
Region: %s

Provide a concise rationale (2-3 sentences).`

const partnerPromptTemplate = `Why would %s be a good technology partner for %s?

Vendor:
- Product: %s
- Description: %s

Company: %s
Category: %s
Description: %s
Region: %s

Provide a concise rationale (2-3 sentences).`

// buildRationalePrompt assembles the bounded user prompt for one candidate.
// The variant depends on the discovery mode: prospective customers get the
// "why buy" framing, prospective partners the "why integrate" framing.
func buildRationalePrompt(record *core.CompanyRecord, profile *core.TargetProfile) string {
	template := customerPromptTemplate
	if profile.Mode == core.ModePartners {
		template = partnerPromptTemplate
	}

	vendor := profile.Vendor
	if vendor == "" {
		vendor = "the vendor"
	}

	region := record.Region
	if region == "" {
		region = "Not specified"
	}

	return fmt.Sprintf(template,
		record.Name,
		vendor,
		profile.Product,
		truncate(profile.Description, 400),
		record.Name,
		record.Category,
		truncate(record.Description, 400),
		region,
	)
}

// truncate bounds text to roughly max bytes, cutting at a word boundary when
// one exists and never splitting a multi-byte rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	// Back off continuation bytes so the cut lands on a rune boundary.
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
