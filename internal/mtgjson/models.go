package mtgjson

type mtgjsonCard struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	FaceName string `json:"faceName"`
	Side     string `json:"side"`
	Code     string `json:"setCode"`
	Number   string `json:"number"`
	Layout   string `json:"layout"`
}

// isSecondarySide is true for the back or later faces of multi-face cards. Every face of such a card
// is listed with the full name, only the first side is kept.
func (c *mtgjsonCard) isSecondarySide() bool {
	return c.Side != "" && c.Side != "a"
}
