package utils

// Session window boundaries in UTC hours. The windows are the ones the
// journal's session labels refer to: Asia from the Sydney open, London
// from the European open, New York until the US close.
const (
	asiaOpenHour     = 22
	londonOpenHour   = 7
	newYorkOpenHour  = 12
	newYorkCloseHour = 21
)

// SessionForHour maps an entry hour (UTC) to a canonical session label.
// Hours outside every window read as "".
func SessionForHour(hour int) string {
	switch {
	case hour < 0 || hour > 23:
		return ""
	case hour >= asiaOpenHour || hour < londonOpenHour:
		return "Asia"
	case hour < newYorkOpenHour:
		return "London"
	case hour < newYorkCloseHour:
		return "New York"
	default:
		return ""
	}
}
