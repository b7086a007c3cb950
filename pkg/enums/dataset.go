package enums

import "fmt"

// Dataset names one of the four ingestible record sets.
type Dataset string

const (
	DatasetVenues       Dataset = "venues"
	DatasetMembers      Dataset = "members"
	DatasetBookings     Dataset = "bookings"
	DatasetTransactions Dataset = "transactions"
)

// Datasets lists every dataset in ingestion order.
var Datasets = []Dataset{
	DatasetVenues,
	DatasetMembers,
	DatasetBookings,
	DatasetTransactions,
}

// String implements fmt.Stringer.
func (d Dataset) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Dataset.
func (d Dataset) IsValid() bool {
	for _, candidate := range Datasets {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDataset converts raw input into a Dataset.
func ParseDataset(value string) (Dataset, error) {
	for _, candidate := range Datasets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dataset %q", value)
}
