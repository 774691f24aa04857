package generator

// Fixed catalogs. Arrays are copied on access so callers can never alter them.
var (
	amenityCatalog = [...]string{
		"coffee machine", "meeting room", "meeting booth", "monitors",
		"printer", "scanner", "whiteboard", "projector", "kitchen", "lounge area",
	}
	providerCatalog = [...]string{"WeWork", "Regus", "Spaces", "Knotel", "Industrious"}
	cityCatalog     = [...]string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville", "San Francisco", "Columbus", "Indianapolis",
		"Seattle", "Denver", "Boston", "Nashville", "Portland",
	}
	industryCatalog = [...]string{
		"Tech", "Finance", "Healthcare", "Education", "Manufacturing",
		"Retail", "Transportation", "Energy", "Media", "Hospitality",
	}
	roleCatalog = [...]string{
		"Engineer", "Manager", "Analyst", "Designer", "Developer",
		"Consultant", "Sales", "Marketing", "HR", "Operations",
	}
	genderCatalog = [...]string{"male", "female"}
)

// Amenities returns the amenity names in id order.
func Amenities() []string { return append([]string(nil), amenityCatalog[:]...) }

// Providers returns the coworking provider names in id order.
func Providers() []string { return append([]string(nil), providerCatalog[:]...) }

// Cities returns the city names in id order.
func Cities() []string { return append([]string(nil), cityCatalog[:]...) }

// Industries returns the industries a company is drawn from.
func Industries() []string { return append([]string(nil), industryCatalog[:]...) }

// Roles returns the job roles a person is drawn from.
func Roles() []string { return append([]string(nil), roleCatalog[:]...) }

// Genders returns the genders a person is drawn from.
func Genders() []string { return append([]string(nil), genderCatalog[:]...) }
