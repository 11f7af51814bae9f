package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Coordinates is always (latitude, longitude). Provider payloads that put the
// longitude first are converted by ParsePosition and nowhere else.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// ParsePosition reads a "<longitude> <latitude>" pair.
func ParsePosition(pos string) (Coordinates, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return Coordinates{}, errors.Errorf("malformed position %q", pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(err, "parse longitude of %q", pos)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(err, "parse latitude of %q", pos)
	}

	coords := Coordinates{Lat: lat, Lon: lon}
	if !coords.Valid() {
		return Coordinates{}, errors.Errorf("position %q out of range", pos)
	}
	return coords, nil
}
