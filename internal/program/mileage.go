package program

import "time"

// MileageTarget holds the planned running miles per weekday
// for one absolute program week.
type MileageTarget struct {
	Mon      int  `json:"mon"`
	Tue      int  `json:"tue"`
	Wed      int  `json:"wed"`
	Thu      int  `json:"thu"`
	Fri      int  `json:"fri"`
	Sat      int  `json:"sat"`
	Sun      int  `json:"sun"`
	Total    int  `json:"total"`
	IsDeload bool `json:"isDeload,omitempty"`
	IsTest   bool `json:"isTest,omitempty"`
}

// Miles returns the planned miles for the given weekday.
func (mt MileageTarget) Miles(weekday time.Weekday) int {
	switch weekday {
	case time.Monday:
		return mt.Mon
	case time.Tuesday:
		return mt.Tue
	case time.Wednesday:
		return mt.Wed
	case time.Thursday:
		return mt.Thu
	case time.Friday:
		return mt.Fri
	case time.Saturday:
		return mt.Sat
	case time.Sunday:
		return mt.Sun
	}
	return 0
}

// MileageTargets maps absolute program week (5..21) to its mileage plan.
// Weeks 1-4 are the strength/walk-run block and have no mileage targets.
var MileageTargets = map[int]MileageTarget{
	5:  {Tue: 3, Thu: 3, Fri: 2, Sat: 4, Total: 12},
	6:  {Tue: 3, Thu: 3, Fri: 3, Sat: 5, Total: 14},
	7:  {Tue: 4, Thu: 3, Fri: 3, Sat: 5, Total: 15},
	8:  {Tue: 4, Thu: 4, Fri: 3, Sat: 6, Total: 17},
	9:  {Mon: 4, Wed: 4, Fri: 3, Sat: 7, Total: 18},
	10: {Mon: 4, Wed: 4, Fri: 4, Sat: 8, Total: 20},
	11: {Mon: 5, Wed: 4, Fri: 4, Sat: 9, Total: 22},
	12: {Mon: 4, Wed: 3, Fri: 3, Sat: 6, Total: 16, IsDeload: true},
	13: {Mon: 5, Wed: 5, Fri: 4, Sat: 10, Total: 24},
	14: {Mon: 5, Wed: 5, Fri: 4, Sat: 11, Total: 25},
	15: {Mon: 5, Wed: 5, Fri: 5, Sat: 12, Total: 27},
	16: {Mon: 4, Wed: 4, Fri: 3, Sat: 8, Total: 19, IsDeload: true},
	17: {Mon: 5, Wed: 6, Fri: 5, Sat: 13, Total: 29},
	18: {Mon: 6, Wed: 6, Fri: 5, Sat: 14, Total: 31},
	19: {Mon: 6, Wed: 6, Fri: 5, Sat: 15, Total: 32},
	20: {Mon: 5, Wed: 4, Fri: 4, Sat: 10, Total: 23, IsDeload: true},
	21: {Mon: 5, Wed: 5, Fri: 4, Sat: 16, Total: 30, IsTest: true},
}

// MileageTargetForWeek returns the mileage plan for an absolute program week.
func MileageTargetForWeek(week int) (MileageTarget, bool) {
	mt, ok := MileageTargets[week]
	return mt, ok
}
