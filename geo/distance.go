package geo

import (
	"math"

	"github.com/jftuga/geodist"
)

// Distance returns the distance between a and b in kilometres on the WGS-84
// ellipsoid. Near-antipodal pairs where Vincenty does not converge fall back to
// the spherical haversine formula.
func Distance(a, b Coordinates) float64 {
	from := geodist.Coord{Lat: a.Lat, Lon: a.Lon}
	to := geodist.Coord{Lat: b.Lat, Lon: b.Lon}

	if _, km, err := geodist.VincentyDistance(from, to); err == nil && !math.IsNaN(km) && !math.IsInf(km, 0) {
		return km
	}

	_, km := geodist.HaversineDistance(from, to)
	return km
}
