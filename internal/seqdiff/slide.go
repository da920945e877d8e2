package seqdiff

// slide normalizes the change marks of one sequence. A run of changed tokens can move one position up when the token before it equals its last token, and one
// position down when the token after it equals its first token; either move keeps the same common subsequence. Each run is moved up as far as it goes (joining
// any run it touches), then down as far as it goes (again joining), repeating until it stops growing. Runs therefore join whenever they can and settle at their
// last possible position.
func slide[T any](s []T, changed []bool, eq func(a, b T) bool) {
	n := len(s)
	i := 0
	for {
		for i < n && !changed[i] {
			i++
		}
		if i == n {
			return
		}
		start := i
		for i < n && changed[i] {
			i++
		}
		end := i

		for {
			size := end - start

			for start > 0 && eq(s[start-1], s[end-1]) {
				start--
				end--
				changed[start] = true
				changed[end] = false
				for start > 0 && changed[start-1] {
					start--
				}
			}

			for end < n && eq(s[start], s[end]) {
				changed[start] = false
				changed[end] = true
				start++
				end++
				for end < n && changed[end] {
					end++
				}
			}

			if end-start == size {
				break
			}
		}
		i = end
	}
}
