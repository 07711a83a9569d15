// Package seed owns the built-in catalog the store is bootstrapped from,
// plus the slug and image-path normalization applied to it.
package seed

import (
	"fmt"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// DataVersion tags the seeded catalog layout. Bump it whenever the
// structure or content of the built-in products changes; a mismatch with
// the persisted tag triggers a product reseed on startup.
const DataVersion = "v2"

func media360(seedName string) []string {
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", seedName, i+1)
	}
	return urls
}

// Products returns the built-in catalog with slugs derived from names and
// image paths already normalized. Callers get a fresh copy each time.
func Products() []domain.Product {
	base := []domain.Product{
		{
			ID:            "1",
			Name:          "Espresso Maestro Pro",
			Description:   "The definitive espresso machine for demanding coffee lovers. Built with meticulous attention to detail, it pairs precision brewing hardware with an elegant stainless body for a cafe-grade shot at home.",
			Price:         1299.99,
			OriginalPrice: 1599.99,
			Image:         "/Premium_espresso_machine_product_4825e079.png",
			Images:        []string{"/Premium_espresso_machine_product_4825e079.png"},
			Media360:      media360("espresso"),
			Category:      "Espresso",
			Features: []string{
				"15 bar pressure system for a perfect espresso",
				"Integrated stainless steel grinder with 12 grind levels",
				"Smart touch screen with intuitive controls",
				"Professional steam wand for cappuccinos and lattes",
				"Removable 2.5L water tank",
				"Fast preheat in under 60 seconds",
			},
			InStock:     5,
			Featured:    true,
			Rating:      4.8,
			ReviewCount: 142,
			Specifications: map[string]string{
				"Dimensions": "35 x 40 x 45 cm",
				"Weight":     "8.5 kg",
				"Power":      "1450W",
				"Pressure":   "15 bar",
				"Tank":       "2.5L",
				"Warranty":   "3 years",
			},
		},
		{
			ID:            "2",
			Name:          "Bean-to-Cup Elite",
			Description:   "Fully automated coffee at its finest. This machine turns whole beans into a finished drink at the press of a button, delivering professional freshness and quality at home.",
			Price:         2499.99,
			OriginalPrice: 2899.99,
			Image:         "/Bean-to-cup_coffee_machine_product_a4000224.png",
			Images:        []string{"/Bean-to-cup_coffee_machine_product_a4000224.png"},
			Media360:      media360("bean"),
			Category:      "Automatic",
			Features: []string{
				"Quiet ceramic grinder with 10 grind settings",
				"12 customizable pre-programmed recipes",
				"Filtered 2.5L water tank",
				"Built-in automatic cleaning cycle",
				"Backlit LCD interface",
				"Airtight 500g bean hopper",
			},
			InStock:     8,
			Featured:    true,
			Rating:      4.9,
			ReviewCount: 89,
			Specifications: map[string]string{
				"Dimensions":  "42 x 35 x 48 cm",
				"Weight":      "12.3 kg",
				"Power":       "1850W",
				"Pressure":    "19 bar",
				"Tank":        "2.5L",
				"Bean hopper": "500g",
				"Warranty":    "5 years",
			},
		},
		{
			ID:          "3",
			Name:        "French Press Deluxe",
			Description: "The art of French coffee revisited with contemporary elegance. This high-end press reveals every aroma of your coffee with a sophisticated copper and steel design.",
			Price:       899.99,
			Image:       "/Luxury_French_press_machine_cce82276.png",
			Images:      []string{"/Luxury_French_press_machine_cce82276.png"},
			Media360:    media360("press"),
			Category:    "French Press",
			Features: []string{
				"Handcrafted premium copper finish",
				"Insulating double wall keeps temperature",
				"Ultra-fine stainless steel filter",
				"Generous 1.2L capacity (8-10 cups)",
				"Non-slip ergonomic handle",
				"Dishwasher safe",
			},
			InStock:     12,
			Featured:    false,
			Rating:      4.6,
			ReviewCount: 234,
			Specifications: map[string]string{
				"Dimensions": "18 x 15 x 28 cm",
				"Weight":     "1.8 kg",
				"Capacity":   "1.2L",
				"Materials":  "Copper, stainless steel, borosilicate glass",
				"Warranty":   "2 years",
			},
		},
		{
			ID:            "4",
			Name:          "Cappuccino Master",
			Description:   "The cappuccino specialist for connoisseurs. A semi-automatic machine giving full control over every brewing step, from grind to perfectly textured milk.",
			Price:         1899.99,
			OriginalPrice: 2199.99,
			Image:         "/Premium_espresso_machine_product_4825e079.png",
			Images:        []string{"/Premium_espresso_machine_product_4825e079.png"},
			Media360:      media360("espresso"),
			Category:      "Cappuccino",
			Features: []string{
				"360° rotating steam wand for milk frothing",
				"Ultra-precise PID temperature control",
				"Refrigerated integrated milk tank",
				"7 inch touch interface",
				"Memory for 8 custom profiles",
				"Automatic descaling system",
			},
			InStock:     3,
			Featured:    true,
			Rating:      4.7,
			ReviewCount: 167,
			Specifications: map[string]string{
				"Dimensions": "38 x 42 x 44 cm",
				"Weight":     "11.2 kg",
				"Power":      "1650W",
				"Pressure":   "15 bar",
				"Water tank": "2.8L",
				"Milk tank":  "1.5L",
				"Warranty":   "4 years",
			},
		},
		{
			ID:          "5",
			Name:        "Barista Station Pro",
			Description: "A professional coffee station for your kitchen. Dual boilers and pro-grade controls let it rival commercial machines for true enthusiasts.",
			Price:       3299.99,
			Image:       "/Bean-to-cup_coffee_machine_product_a4000224.png",
			Images:      []string{"/Bean-to-cup_coffee_machine_product_a4000224.png"},
			Media360:    media360("bean"),
			Category:    "Professional",
			Features: []string{
				"Independent dual copper boilers",
				"PID temperature control within 1°C",
				"Analog professional pressure gauge",
				"Full metal construction",
				"E61 thermosiphon group head",
				"Heated cup tray",
			},
			InStock:     2,
			Featured:    true,
			Rating:      4.9,
			ReviewCount: 45,
			Specifications: map[string]string{
				"Dimensions": "58 x 53 x 45 cm",
				"Weight":     "28.5 kg",
				"Power":      "2400W",
				"Pressure":   "15 bar",
				"Tank":       "4.0L",
				"Boilers":    "Dual (1.4L + 2.6L)",
				"Warranty":   "7 years",
			},
		},
		{
			ID:          "6",
			Name:        "Compact Essential",
			Description: "Quality espresso in a compact footprint. Perfect for small kitchens without compromising on extraction, it covers all the essentials of a full-size espresso machine.",
			Price:       599.99,
			Image:       "/Luxury_French_press_machine_cce82276.png",
			Images:      []string{"/Luxury_French_press_machine_cce82276.png"},
			Media360:    media360("press"),
			Category:    "Compact",
			Features: []string{
				"Ultra-compact space-saving design",
				"One-touch perfect espresso",
				"Removable 1.2L tank",
				"Smart energy saving mode",
				"30 second fast heat-up",
				"Works with capsules and ground coffee",
			},
			InStock:     15,
			Featured:    false,
			Rating:      4.4,
			ReviewCount: 312,
			Specifications: map[string]string{
				"Dimensions": "25 x 32 x 28 cm",
				"Weight":     "4.2 kg",
				"Power":      "1200W",
				"Pressure":   "15 bar",
				"Tank":       "1.2L",
				"Warranty":   "2 years",
			},
		},
		{
			ID:            "7",
			Name:          "Mocha Deluxe Pro",
			Description:   "The machine that turns your kitchen into an authentic Italian cafe. Specialized in mochas and hot chocolates, it blends coffee and cocoa into indulgent drinks.",
			Price:         1699.99,
			OriginalPrice: 1999.99,
			Image:         "/Premium_espresso_machine_product_4825e079.png",
			Images:        []string{"/Premium_espresso_machine_product_4825e079.png"},
			Media360:      media360("espresso"),
			Category:      "Mocha",
			Features: []string{
				"Integrated heated chocolate reservoir",
				"10 pre-programmed mocha recipes",
				"Automatic chocolate and coffee mixer",
				"Cocoa intensity control",
				"5 inch color touch screen",
				"Self-cleaning chocolate circuit",
			},
			InStock:     7,
			Featured:    true,
			Rating:      4.5,
			ReviewCount: 98,
			Specifications: map[string]string{
				"Dimensions":     "40 x 38 x 42 cm",
				"Weight":         "9.8 kg",
				"Power":          "1750W",
				"Pressure":       "15 bar",
				"Water tank":     "2.2L",
				"Chocolate tank": "800ml",
				"Warranty":       "3 years",
			},
		},
		{
			ID:          "8",
			Name:        "Cold Brew Master",
			Description: "Revolutionize your summer with a machine dedicated to cold brew and iced coffee. Cold extraction reveals unique aromas for exceptional refreshing drinks.",
			Price:       1199.99,
			Image:       "/Bean-to-cup_coffee_machine_product_a4000224.png",
			Images:      []string{"/Bean-to-cup_coffee_machine_product_a4000224.png"},
			Media360:    media360("bean"),
			Category:    "Cold Brew",
			Features: []string{
				"12-24h cold extraction system",
				"Insulated 3L reservoir",
				"Permanent ultra-fine filter",
				"Automatic scheduling",
				"Professional serving tap",
				"1.5L glass serving carafe included",
			},
			InStock:     9,
			Featured:    false,
			Rating:      4.3,
			ReviewCount: 156,
			Specifications: map[string]string{
				"Dimensions":      "35 x 25 x 65 cm",
				"Weight":          "6.8 kg",
				"Total capacity":  "3L",
				"Extraction time": "12-24h",
				"Warranty":        "2 years",
			},
		},
	}

	out := make([]domain.Product, len(base))
	for i, p := range base {
		p.Slug = Slugify(p.Name)
		out[i] = NormalizeProduct(p)
	}
	return out
}
