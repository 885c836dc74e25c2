package view

// Pagination over an already-fetched collection. Pages are 1-indexed; page k
// holds elements [(k-1)*perPage, k*perPage) clipped to the collection.

func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func ClampPage(page, total, perPage int) int {
	pages := PageCount(total, perPage)
	if pages == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

func PageSlice[T any](items []T, page, perPage int) []T {
	if perPage <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageNumbers lists every page number for the pagination strip.
func PageNumbers(total, perPage int) []int {
	pages := PageCount(total, perPage)
	numbers := make([]int, 0, pages)
	for i := 1; i <= pages; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}
