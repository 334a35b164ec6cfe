package service

import (
	"github.com/google/uuid"

	"howlongsince/internal/model"
)

// defaultCategories is the fixed seed set inserted at first run.
// Colors come from the branding palette; icons are Tabler icon tokens.
var defaultCategories = []model.Category{
	{Name: "Kitchen", Color: "#3B82F6", Icon: "utensils", IsDefault: true, Order: 1},
	{Name: "Bathroom", Color: "#8B5CF6", Icon: "bath", IsDefault: true, Order: 2},
	{Name: "Bedroom", Color: "#EC4899", Icon: "bed", IsDefault: true, Order: 3},
	{Name: "Living Areas", Color: "#10B981", Icon: "sofa", IsDefault: true, Order: 4},
	{Name: "Exterior", Color: "#F59E0B", Icon: "home", IsDefault: true, Order: 5},
	{Name: "Vehicles", Color: "#EF4444", Icon: "car", IsDefault: true, Order: 6},
	{Name: "Digital/Tech", Color: "#6366F1", Icon: "device-desktop", IsDefault: true, Order: 7},
	{Name: "Health", Color: "#14B8A6", Icon: "heart", IsDefault: true, Order: 8},
	{Name: "Garden/Plants", Color: "#84CC16", Icon: "plant", IsDefault: true, Order: 9},
	{Name: "Pets", Color: "#F97316", Icon: "paw", IsDefault: true, Order: 10},
}

// newDefaultCategories returns a fresh copy of the seed set with
// identifiers assigned.
func newDefaultCategories() []model.Category {
	out := make([]model.Category, len(defaultCategories))
	for i, category := range defaultCategories {
		category.ID = uuid.NewString()
		out[i] = category
	}
	return out
}
