package booking

import "slices"

type ServiceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Icon        string `json:"icon"`
}

var catalog = []ServiceInfo{
	{
		ID:          "room",
		Name:        "Hotel Room",
		Description: "Comfortable accommodation",
		Price:       "$150/night",
		Icon:        "fas fa-bed",
	},
	{
		ID:          "meeting",
		Name:        "Meeting Room",
		Description: "Professional meeting space",
		Price:       "$75/hour",
		Icon:        "fas fa-users",
	},
	{
		ID:          "spa",
		Name:        "Spa Treatment",
		Description: "Relaxing wellness services",
		Price:       "$120/session",
		Icon:        "fas fa-spa",
	},
}

// Catalog returns the offerable services.
func Catalog() []ServiceInfo {
	return slices.Clone(catalog)
}
