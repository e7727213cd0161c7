package models

import (
	"time"

	"github.com/google/uuid"
)

// Conference represents one of the two league conferences
type Conference string

const (
	ConferenceAFC Conference = "AFC"
	ConferenceNFC Conference = "NFC"
)

// Division represents a geographic division within a conference
type Division string

const (
	DivisionEast  Division = "EAST"
	DivisionNorth Division = "NORTH"
	DivisionSouth Division = "SOUTH"
	DivisionWest  Division = "WEST"
)

// Team represents one of the 32 immutable league franchises.
// The league always holds 8 divisions of 4 teams.
type Team struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	City       string     `json:"city"`
	Conference Conference `json:"conference"`
	Division   Division   `json:"division"`
	Stadium    *string    `json:"stadium,omitempty"`
	Dome       bool       `json:"dome"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DivisionKey identifies a (conference, division) pair.
type DivisionKey struct {
	Conference Conference
	Division   Division
}

// Divisions enumerates the 8 league divisions in a stable order.
func Divisions() []DivisionKey {
	confs := []Conference{ConferenceAFC, ConferenceNFC}
	divs := []Division{DivisionEast, DivisionNorth, DivisionSouth, DivisionWest}
	keys := make([]DivisionKey, 0, 8)
	for _, c := range confs {
		for _, d := range divs {
			keys = append(keys, DivisionKey{Conference: c, Division: d})
		}
	}
	return keys
}
