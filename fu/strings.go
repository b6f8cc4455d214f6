package fu

// Fnzs returns the first non-empty string of the arguments.
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}
