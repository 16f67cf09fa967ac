// Package track defines the two business profiles the scout evaluates
// opportunities against. A Track bundles everything that differs between the
// equipment-resale and consulting pipelines: NAICS scope, classification
// vocabulary, report labels, and the scoring rubric name. The pipeline itself
// is written once and parameterized by Track.
package track

import "github.com/theworkedge/contract-scout/internal/classify"

type Track struct {
	// Key identifies the track in config, logs and the CSV export.
	Key  string
	Name string

	// NAICSCodes route notices to this track and scope the combined search.
	NAICSCodes []string

	Vocabulary classify.Vocabulary
	// DisplayOrder fixes category group order in reports. Categories the
	// classifier emits that are not listed here are appended in first-seen
	// order.
	DisplayOrder []string

	// Report labels.
	PartTitle    string
	PartSubtitle string
	MarginLabel  string
	ItemsLabel   string
}

// DME is the durable-medical-equipment resale track: dealer/wholesaler NAICS
// codes only. Manufacturing codes (339112, 339113) are deliberately absent; a
// reseller cannot qualify as the manufacturer of record.
func DME() Track {
	return Track{
		Key:  "dme",
		Name: "DME",
		NAICSCodes: []string{
			"423450", // Medical, Dental & Hospital Equipment Merchant Wholesalers
			"532283", // Home Health Equipment Rental
			"446199", // All Other Health & Personal Care Stores
			"423460", // Ophthalmic Goods Merchant Wholesalers
		},
		Vocabulary: classify.Vocabulary{
			Categories: []classify.Category{
				{Name: "Wheelchairs - Power", Keywords: []string{
					"power wheelchair", "electric wheelchair", "motorized wheelchair",
					"jazzy", "quantum", "permobil", "power chair", "powerchair",
				}},
				{Name: "Wheelchairs - Manual", Keywords: []string{
					"manual wheelchair", "transport chair", "standard wheelchair",
					"lightweight wheelchair", "folding wheelchair",
				}},
				{Name: "Mobility Scooters", Keywords: []string{
					"mobility scooter", "go-go", "travel scooter", "power scooter",
					"electric scooter", "scooter",
				}},
				{Name: "Hospital Beds", Keywords: []string{
					"hospital bed", "medical bed", "adjustable bed", "bariatric bed",
					"patient bed", "exam table", "electric bed", "semi-electric bed",
				}},
				{Name: "Patient Lifts", Keywords: []string{
					"patient lift", "hoyer", "ceiling lift", "transfer lift",
					"lifting equipment", "patient transfer", "sit-to-stand", "floor lift",
				}},
				{Name: "Walkers and Mobility Aids", Keywords: []string{
					"walker", "rollator", "walking aid", "gait trainer",
					"forearm crutch", "crutch", "cane",
				}},
				{Name: "Bathroom Safety", Keywords: []string{
					"grab bar", "shower chair", "shower bench", "toilet safety",
					"raised toilet seat", "commode", "bath seat", "bath safety",
					"tub transfer", "bathroom safety",
				}},
			},
			// A powered item description usually names the manual variant too.
			Prefer: []classify.Preference{
				{Keep: "Wheelchairs - Power", Drop: "Wheelchairs - Manual"},
			},
			CatchAll: "Mixed DME",
			Default:  "Other Medical Equipment",
		},
		DisplayOrder: []string{
			"Wheelchairs - Power",
			"Hospital Beds",
			"Wheelchairs - Manual",
			"Mobility Scooters",
			"Patient Lifts",
			"Walkers and Mobility Aids",
			"Bathroom Safety",
			"Mixed DME",
			"Other Medical Equipment",
		},
		PartTitle:    "PART 1: DME CONTRACTS (EQUIPMENT RESALE)",
		PartSubtitle: "Product Resale | Est. Net Margin: 35-40%",
		MarginLabel:  "35-40%",
		ItemsLabel:   "Products",
	}
}

// Consulting is the solo professional-services track.
func Consulting() Track {
	return Track{
		Key:  "consulting",
		Name: "Consulting",
		NAICSCodes: []string{
			"541611", // Administrative Management and General Management Consulting
			"541618", // Other Management Consulting Services
			"611430", // Professional and Management Development Training
			"541512", // Computer Systems Design Services
			"541519", // Other Computer Related Services
			"541690", // Other Scientific and Technical Consulting Services
		},
		Vocabulary: classify.Vocabulary{
			Categories: []classify.Category{
				{Name: "Process Improvement", Keywords: []string{
					"process improvement", "process optimization", "workflow improvement",
					"lean", "six sigma", "continuous improvement", "kaizen",
					"operational excellence", "efficiency improvement", "business process",
				}},
				{Name: "Agile & Project Management", Keywords: []string{
					"agile", "scrum", "agile transformation", "agile coaching",
					"project management", "program management", "pmo",
					"change management", "organizational change", "sprint",
				}},
				{Name: "Automation & Digital", Keywords: []string{
					"automation", "process automation", "workflow automation",
					"low-code", "no-code", "digital transformation",
					"rpa", "robotic process automation", "system integration",
				}},
				{Name: "Training & Development", Keywords: []string{
					"training", "coaching", "facilitation", "workshop",
					"agile training", "scrum training", "leadership development",
					"organizational development", "capability development",
				}},
				{Name: "Management Consulting", Keywords: []string{
					"strategic planning", "management consulting", "business consulting",
					"performance improvement", "advisory", "assessment", "recommendation",
					"strategic", "consulting services",
				}},
			},
			CatchAll: "Management Consulting",
			Default:  "Other Consulting",
		},
		DisplayOrder: []string{
			"Process Improvement",
			"Agile & Project Management",
			"Automation & Digital",
			"Training & Development",
			"Management Consulting",
			"Other Consulting",
		},
		PartTitle:    "PART 2: CONSULTING CONTRACTS (PROFESSIONAL SERVICES)",
		PartSubtitle: "Solo Work | Est. Net Margin: 80%",
		MarginLabel:  "80%",
		ItemsLabel:   "Services",
	}
}

// All returns the tracks in report order.
func All() []Track {
	return []Track{DME(), Consulting()}
}

// CombinedNAICS joins every track's code list for the single search call.
func CombinedNAICS(tracks []Track) []string {
	var codes []string
	for _, t := range tracks {
		codes = append(codes, t.NAICSCodes...)
	}
	return codes
}
