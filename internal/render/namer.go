package render

import "strconv"

// Namer resolves display names for one result set's columns. Columns
// without a driver-reported name get a synthesized placeholder; the
// placeholder counter advances only when a placeholder is handed out, so
// named columns never consume a number. The zero value is ready to use and
// a fresh Namer must be created per result set.
type Namer struct {
	anon int
}

func (n *Namer) Name(raw string) string {
	if raw == "" {
		n.anon++
		return "NoName" + strconv.Itoa(n.anon)
	}
	return raw
}
