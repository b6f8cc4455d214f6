package fu

/*
Struct is a flat named record of float values, the currency of metrics
reporting: an evaluation produces one Struct per subset per iteration.
*/
type Struct struct {
	Names  []string
	Values []float64
}

/*
MakeStruct zips names and values into a Struct
*/
func MakeStruct(names []string, values ...float64) Struct {
	return Struct{Names: names, Values: values}
}

/*
Float returns value of the named field if exists and dflt value otherwise
*/
func (s Struct) Float(name string, dflt float64) float64 {
	for i, n := range s.Names {
		if n == name && i < len(s.Values) {
			return s.Values[i]
		}
	}
	return dflt
}

/*
Has reports whether the Struct carries the named field
*/
func (s Struct) Has(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}
