// Package period содержит календарную арифметику сайта: окна фильтра поиска
// по дате и даты окончания тарифных планов.
package period

import "time"

// Окна фильтра date_range. Значения в днях отсчитываются от текущего момента.
var dateRanges = map[string]int{
	"1_month":  30,
	"3_months": 90,
	"6_months": 180,
	"1_year":   365,
}

// PlanBasic тариф на три месяца. Любой другой тариф продлевает подписку на год.
const PlanBasic = "basic"

// Since возвращает нижнюю границу created_at для окна dateRange.
// Для неизвестного или пустого окна второй результат равен false.
func Since(now time.Time, dateRange string) (time.Time, bool) {
	days, ok := dateRanges[dateRange]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// PlanEnd считает дату окончания подписки по календарю:
// basic: плюс три месяца, остальные планы: плюс один год.
func PlanEnd(start time.Time, plan string) time.Time {
	if plan == PlanBasic {
		return start.AddDate(0, 3, 0)
	}
	return start.AddDate(1, 0, 0)
}
