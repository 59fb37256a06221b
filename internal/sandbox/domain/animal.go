package domain

import "github.com/finconsgroup/zooadmin/pkg/zoosdk"

// Animal is a zoo animal record. UserID is the assigned caretaker and
// EnclosureID the housing enclosure; both are optional.
type Animal struct {
	ID          int64
	Name        string
	Category    zoosdk.AnimalCategory
	Weight      float64
	UserID      *int64
	EnclosureID *int64
}
