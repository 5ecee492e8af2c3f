package pagination

// CalculateOffset converts a 1-based page into a row offset.
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit), never less than 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit < 1 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
