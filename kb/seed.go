package kb

import (
	"log/slog"

	"github.com/axelwave/dealerscout/core"
)

// Seed returns a knowledge base preloaded with the built-in sample corpus of
// North American dealer groups and automotive retail technology vendors.
func Seed(logger *slog.Logger) *KnowledgeBase {
	knowledgeBase, _ := New(seedRecords(), logger)
	return knowledgeBase
}

func seedRecords() []*core.CompanyRecord {
	return []*core.CompanyRecord{
		{
			Name:        "AutoNation",
			Category:    core.CategoryDealership,
			Description: "The largest US automotive retailer, operating over 300 franchised rooftops nationwide on a patchwork of legacy DMS and CRM systems.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail", "franchise dealer"},
		},
		{
			Name:        "Penske Automotive Group",
			Category:    core.CategoryDealership,
			Description: "International dealer group with operations in the US, UK, Germany and Japan and complex OEM relationships requiring unified data exchange.",
			Size:        core.SizeLarge,
			Region:      "North America",
			Industries:  []string{"automotive retail", "dealership network"},
		},
		{
			Name:        "Lithia Motors",
			Category:    core.CategoryDealership,
			Description: "One of the fastest-growing dealer groups in the United States, with pain points around system integration and month-end close processes.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail", "automotive group"},
		},
		{
			Name:        "Sonic Automotive",
			Category:    core.CategoryDealership,
			Description: "Fortune 500 automotive retailer with fragmented sales, F&I and service systems across its rooftop network.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail"},
		},
		{
			Name:        "Group 1 Automotive",
			Category:    core.CategoryDealership,
			Description: "International retailer operating in the US, UK and Brazil, a candidate for multi-region support and localized compliance workflows.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail", "dealership network"},
		},
		{
			Name:        "Carvana",
			Category:    core.CategoryDealership,
			Description: "Digital-first used car retailer combining online sales with physical locations, known for valuing modern, API-first technology stacks.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail", "car retail"},
		},
		{
			Name:        "Asbury Automotive Group",
			Category:    core.CategoryDealership,
			Description: "Large franchise dealer group expanding through acquisitions, consolidating disparate retail and accounting systems along the way.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"automotive retail", "franchise dealer"},
		},
		{
			Name:        "Hendrick Automotive Group",
			Category:    core.CategoryDealership,
			Description: "Privately held dealer group with around a hundred franchises, regional concentration and growing digital retail ambitions.",
			Size:        core.SizeMedium,
			Region:      "United States",
			Industries:  []string{"automotive retail", "franchise dealer"},
		},
		{
			Name:        "Ken Garff Automotive Group",
			Category:    core.CategoryDealership,
			Description: "Family-owned regional dealer group in the western United States seeking to modernize customer experience across stores.",
			Size:        core.SizeMedium,
			Region:      "United States",
			Industries:  []string{"automotive retail"},
		},
		{
			Name:        "CDK Global",
			Category:    core.CategoryTechnologyPartner,
			Description: "Legacy DMS provider with deep OEM certifications and established dealer networks offering certified integration pathways.",
			Size:        core.SizeLarge,
			Region:      "North America",
			Industries:  []string{"dms software", "automotive software"},
		},
		{
			Name:        "Tekion",
			Category:    core.CategoryTechnologyPartner,
			Description: "Cloud-native automotive retail platform with modern APIs, a fit for best-of-breed technical partnerships.",
			Size:        core.SizeMedium,
			Region:      "United States",
			Industries:  []string{"automotive saas", "dms software"},
		},
		{
			Name:        "Dealertrack",
			Category:    core.CategoryTechnologyPartner,
			Description: "Dealership management solutions provider with complementary F&I tools widely deployed across US dealerships.",
			Size:        core.SizeLarge,
			Region:      "United States",
			Industries:  []string{"dms software", "crm automotive"},
		},
		{
			Name:        "Reynolds & Reynolds",
			Category:    core.CategoryTechnologyPartner,
			Description: "Established automotive retail software company with accounting depth, bridging legacy and modern dealership systems.",
			Size:        core.SizeLarge,
			Region:      "North America",
			Industries:  []string{"dms software", "automotive software"},
		},
		{
			Name:        "Cox Automotive",
			Category:    core.CategoryTechnologyPartner,
			Description: "Portfolio of dealership software brands spanning inventory, marketing and retail workflows across North America.",
			Size:        core.SizeLarge,
			Region:      "North America",
			Industries:  []string{"automotive software", "auto retail technology"},
		},
		{
			Name:        "DealerSocket",
			Category:    core.CategoryTechnologyPartner,
			Description: "Automotive CRM and retail technology vendor serving franchise and independent dealerships.",
			Size:        core.SizeMedium,
			Region:      "United States",
			Industries:  []string{"crm automotive", "dealership software"},
		},
		{
			Name:        "Solera",
			Category:    core.CategoryTechnologyPartner,
			Description: "Vehicle lifecycle software vendor whose data services complement dealership retail platforms.",
			Size:        core.SizeLarge,
			Region:      "North America",
			Industries:  []string{"automotive software", "vehicle software"},
		},
	}
}
