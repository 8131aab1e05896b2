// Package month содержит датовую арифметику для расчёта дат оплаты подписки.
package month

import (
	"time"
)

// NextDueDate возвращает дату следующего платежа: дата последнего события,
// сдвинутая на период плана в месяцах. Для месячного плана это +1 месяц,
// для годового +12.
func NextDueDate(last time.Time, recurrenceMonths int) time.Time {
	if recurrenceMonths <= 0 {
		recurrenceMonths = 1
	}
	return last.AddDate(0, recurrenceMonths, 0)
}

// MonthsBetween считает количество полных месяцев между двумя датами.
// Если to раньше from, возвращает 0.
func MonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
