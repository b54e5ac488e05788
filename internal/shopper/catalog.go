package shopper

import (
	"github.com/festivault/festivault-backend/pkg/enums"
	"github.com/festivault/festivault-backend/pkg/money"
)

// Product is one purchasable option in the curated vendor catalog.
type Product struct {
	Name            string      `json:"name"`
	Vendor          string      `json:"vendor"`
	Price           money.Money `json:"price"`
	DistanceKm      float64     `json:"distance"`
	Rating          float64     `json:"rating"`
	StudentDiscount bool        `json:"student_discount"`
	Halal           bool        `json:"halal"`
	Vegan           bool        `json:"vegan"`
	Ethical         bool        `json:"ethical"`
}

// catalog stands in for live vendor APIs. Order within a category is
// stable so purchase-by-index stays meaningful between calls.
var catalog = map[enums.Category][]Product{
	enums.CategoryFood: {
		{Name: "Pizza Combo", Vendor: "Pizza Palace", Price: money.FromCents(2599), DistanceKm: 2.3, Rating: 4.5, StudentDiscount: true, Ethical: true},
		{Name: "Veggie Pizza", Vendor: "Green Slice", Price: money.FromCents(2250), DistanceKm: 3.1, Rating: 4.7, Halal: true, Vegan: true, Ethical: true},
		{Name: "Meat Lovers Pizza", Vendor: "Quick Bite", Price: money.FromCents(1899), DistanceKm: 1.5, Rating: 4.2, StudentDiscount: true, Halal: true},
		{Name: "Gourmet Pizza", Vendor: "Artisan Kitchen", Price: money.FromCents(3200), DistanceKm: 4.0, Rating: 4.9, Ethical: true},
		{Name: "Grocery Bundle", Vendor: "Fresh Mart", Price: money.FromCents(4500), DistanceKm: 1.0, Rating: 4.3, StudentDiscount: true, Halal: true, Vegan: true, Ethical: true},
	},
	enums.CategoryVenue: {
		{Name: "Community Hall", Vendor: "City Events", Price: money.FromCents(15000), DistanceKm: 2.0, Rating: 4.4, StudentDiscount: true, Halal: true, Vegan: true, Ethical: true},
		{Name: "Modern Conference Room", Vendor: "Business Center", Price: money.FromCents(20000), DistanceKm: 5.0, Rating: 4.6, Halal: true, Vegan: true, Ethical: true},
		{Name: "Outdoor Space", Vendor: "Park Services", Price: money.FromCents(8000), DistanceKm: 3.5, Rating: 4.1, StudentDiscount: true, Halal: true, Vegan: true, Ethical: true},
	},
	enums.CategoryDecor: {
		{Name: "Balloon Package", Vendor: "Party Plus", Price: money.FromCents(3500), DistanceKm: 2.5, Rating: 4.3, StudentDiscount: true, Halal: true, Vegan: true},
		{Name: "Premium Decorations", Vendor: "Elegant Affairs", Price: money.FromCents(6500), DistanceKm: 4.5, Rating: 4.8, Halal: true, Vegan: true, Ethical: true},
		{Name: "Budget Decor Set", Vendor: "ValueDecorations", Price: money.FromCents(2500), DistanceKm: 1.2, Rating: 3.9, StudentDiscount: true, Halal: true, Vegan: true},
	},
	enums.CategoryMisc: {
		{Name: "Supplies Bundle", Vendor: "Office Depot", Price: money.FromCents(3000), DistanceKm: 2.0, Rating: 4.5, StudentDiscount: true, Halal: true, Vegan: true, Ethical: true},
		{Name: "Tech Equipment Rental", Vendor: "TechRent", Price: money.FromCents(7500), DistanceKm: 3.0, Rating: 4.7, StudentDiscount: true, Halal: true, Vegan: true, Ethical: true},
	},
}
