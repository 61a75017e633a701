package domain

// Platform is the normalized identifier of a food-delivery service.
type Platform string

const (
	ShopeeFood Platform = "shopeefood"
	GrabFood   Platform = "grabfood"
	FoodPanda  Platform = "foodpanda"
)

// Platforms is the fixed platform set in ranking input order.
var Platforms = []Platform{ShopeeFood, GrabFood, FoodPanda}

// CloudOrder is the order platforms appear in the word-cloud section.
var CloudOrder = []Platform{FoodPanda, GrabFood, ShopeeFood}

// ParsePlatform resolves free text ("GrabFood", " grabfood ") to a known platform.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(Normalize(s))
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// PlatformInfo is display metadata for one platform.
type PlatformInfo struct {
	ID    Platform `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Emoji string   `json:"emoji" yaml:"emoji"`
	Blurb string   `json:"blurb" yaml:"blurb"`
}

// DefaultCatalogue returns display metadata for the fixed platform set.
func DefaultCatalogue() map[Platform]PlatformInfo {
	return map[Platform]PlatformInfo{
		ShopeeFood: {ID: ShopeeFood, Name: "ShopeeFood", Emoji: "🛵", Blurb: "Fast deliveries, deals, and user feedback from ShopeeFood users."},
		GrabFood:   {ID: GrabFood, Name: "GrabFood", Emoji: "🍔", Blurb: "Explore pricing, speed, and user sentiment from GrabFood reviews."},
		FoodPanda:  {ID: FoodPanda, Name: "FoodPanda", Emoji: "🐼", Blurb: "Discover what people love (or hate) about FoodPanda services."},
	}
}
