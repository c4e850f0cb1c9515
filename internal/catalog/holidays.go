package catalog

import "github.com/clubcorinto/resort/internal/pricing"

// fixedAsuetos lists the fixed-date asuetos observed by both properties as
// month/day pairs. Movable feasts (Semana Santa) are added per year by the
// back office and are not part of the default calendar.
var fixedAsuetos = [][2]int{
	{1, 1},   // Año Nuevo
	{5, 1},   // Día del Trabajo
	{5, 10},  // Día de la Madre
	{6, 17},  // Día del Padre
	{8, 6},   // Fiestas Agostinas
	{9, 15},  // Día de la Independencia
	{11, 2},  // Día de los Difuntos
	{12, 25}, // Navidad
}

// Holidays builds the asueto set for the given years.
func Holidays(years ...int) pricing.HolidaySet {
	s := pricing.NewHolidaySet()
	for _, year := range years {
		for _, md := range fixedAsuetos {
			s.Add(pricing.Date(year, md[0], md[1]))
		}
	}

	return s
}
