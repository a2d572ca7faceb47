package models

// Coordinates is a last-known device position. The last four fields are
// optional in the wire format, hence the pointers.
type Coordinates struct {
	Latitude         float64  `db:"latitude" json:"latitude"`
	Longitude        float64  `db:"longitude" json:"longitude"`
	Accuracy         float64  `db:"accuracy" json:"accuracy"`
	Altitude         *float64 `db:"altitude" json:"altitude,omitempty"`
	AltitudeAccuracy *float64 `db:"altitude_accuracy" json:"altitude_accuracy,omitempty"`
	Heading          *float64 `db:"heading" json:"heading,omitempty"`
	Speed            *float64 `db:"speed" json:"speed,omitempty"`
}

// User is a directory entry.
type User struct {
	ID       string       `db:"id" json:"id"`
	Name     string       `db:"name" json:"name"`
	Password string       `db:"password" json:"password,omitempty"`
	Online   bool         `db:"online" json:"online"`
	Location *Coordinates `json:"location,omitempty"`
}
