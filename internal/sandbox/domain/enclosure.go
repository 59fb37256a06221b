package domain

// Enclosure is a zoo enclosure record. Area is in square metres. UserID
// is the responsible staff member and is optional.
type Enclosure struct {
	ID          int64
	Name        string
	Area        float64
	Description string
	UserID      *int64
}
