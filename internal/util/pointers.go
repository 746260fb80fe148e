package util

func FloatPointer(f float64) *float64 {
	return &f
}

func IntPointer(i int) *int {
	return &i
}

// FloatOrZero is how aggregations treat missing values
func FloatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
