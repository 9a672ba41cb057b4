package ui

// PageWindow calcula las páginas visibles alrededor de la actual:
// desde max(0, actual-2) hasta min(total-1, actual+2). Total cero o
// negativo => nada.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if current < 0 {
		current = 0
	}
	if current >= total {
		current = total - 1
	}

	start := current - 2
	if start < 0 {
		start = 0
	}
	end := current + 2
	if end > total-1 {
		end = total - 1
	}

	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
