package engine

import "github.com/greendilt/footprint/internal/factors"

// Equivalency expresses a footprint total as one relatable real-world
// quantity.
type Equivalency struct {
	Value float64
	Label string
}

// Equivalencies converts a yearly total into the four comparison figures
// shown on the results page. Totals at or below zero yield an empty slice.
func Equivalencies(totalKg float64) []Equivalency {
	if totalKg <= 0 {
		return nil
	}
	return []Equivalency{
		{Value: totalKg / factors.BurgerKg, Label: "beef burgers eaten"},
		{Value: totalKg / factors.LEDBankKgPerHour / 24, Label: "days of 100 LED bulbs (10W) on"},
		{Value: totalKg / factors.CarKgPerKm, Label: "km driven in a gasoline car"},
		{Value: totalKg / factors.NetflixKgPerHour, Label: "hours of Netflix"},
	}
}
