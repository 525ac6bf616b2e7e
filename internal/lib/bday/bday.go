// Package bday содержит вычисление календарного окна для поиска контактов
// с ближайшими днями рождения. Окно задаётся диапазонами месяц/день,
// поэтому год рождения контакта значения не имеет.
package bday

import "time"

// Range описывает непрерывный диапазон дней внутри одного месяца.
type Range struct {
	Month   time.Month
	FromDay int
	ToDay   int
}

// Window возвращает диапазоны месяц/день, покрывающие days дней вперёд
// начиная с today включительно.
//
// Если окно целиком лежит в текущем месяце, возвращается один диапазон.
// Когда окно пересекает границы месяцев (в том числе границу года),
// каждый затронутый месяц даёт свой диапазон: остаток текущего месяца,
// целиком промежуточные месяцы и начало последнего.
func Window(today time.Time, days int) []Range {
	future := today.AddDate(0, 0, days)

	var ranges []Range
	cur := today
	for {
		if cur.Year() == future.Year() && cur.Month() == future.Month() {
			ranges = append(ranges, Range{
				Month:   cur.Month(),
				FromDay: cur.Day(),
				ToDay:   future.Day(),
			})
			return ranges
		}

		// День 0 следующего месяца — это последний день текущего.
		lastDay := time.Date(cur.Year(), cur.Month()+1, 0, 0, 0, 0, 0, cur.Location()).Day()
		ranges = append(ranges, Range{
			Month:   cur.Month(),
			FromDay: cur.Day(),
			ToDay:   lastDay,
		})
		cur = time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, cur.Location())
	}
}
