package organization

// Aliases maps normalized remote company names to the normalized local name
// they should land on (e.g. "ALIANZ SA DE CV" -> "ALIANZ"). The map is
// empty unless an alias file is configured.
type Aliases map[string]string

// NewAliases normalizes both sides of every entry so lookups agree with NormalizeName.
func NewAliases(raw map[string]string) Aliases {
	a := make(Aliases, len(raw))
	for from, to := range raw {
		f, t := NormalizeName(from), NormalizeName(to)
		if f == "" || t == "" {
			continue
		}
		a[f] = t
	}
	return a
}

// Resolve normalizes name and follows one alias hop.
func (a Aliases) Resolve(name string) string {
	n := NormalizeName(name)
	if to, ok := a[n]; ok {
		return to
	}
	return n
}
