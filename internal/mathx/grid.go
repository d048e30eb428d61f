package mathx

// FloorDiv divides v by size rounding toward negative infinity, so cell
// indices are stable across zero. Matches floor(v/size) for positive size.
func FloorDiv(v float32, size float32) int32 {
	q := v / size
	i := int32(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

// FloorDivI is FloorDiv for integer coordinates.
func FloorDivI(v int32, size int32) int32 {
	if v < 0 {
		return (v - size + 1) / size
	}
	return v / size
}
