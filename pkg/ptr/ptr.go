package ptr

// Float64 returns a pointer to the given value.
func Float64(v float64) *float64 {
	return &v
}
