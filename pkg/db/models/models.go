package models

// All returns every persisted model, in ingestion order.
func All() []any {
	return []any{&Venue{}, &Member{}, &Booking{}, &Transaction{}}
}
