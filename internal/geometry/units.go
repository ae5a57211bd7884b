package geometry

// Unit conversion constants. The survey foot is used throughout so that
// feet-based layout constants round-trip to the same metre values.
const (
	MetersPerFoot  = 0.304800609601
	FeetPerMile    = 5280.0
	SecondsPerHour = 3600.0
)

// MetersFromFeet converts a length in feet to metres.
func MetersFromFeet(feet float64) float64 { return feet * MetersPerFoot }

// FeetFromMeters converts a length in metres to feet.
func FeetFromMeters(meters float64) float64 { return meters / MetersPerFoot }

// MPSFromMPH converts a speed in miles per hour to metres per second.
func MPSFromMPH(mph float64) float64 { return MetersFromFeet(mph*FeetPerMile) / SecondsPerHour }

// MPHFromMPS converts a speed in metres per second to miles per hour.
func MPHFromMPS(mps float64) float64 { return FeetFromMeters(mps*SecondsPerHour) / FeetPerMile }
