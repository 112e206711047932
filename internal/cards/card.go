package cards

import (
	"fmt"
	"strings"
)

// Card A catalog record of a card. The catalog is keyed by the card name.
// Which of the optional fields are set depends on the dataset the card was loaded from.
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SetCode     string     `json:"set_code,omitempty"`
	Number      string     `json:"collector_number,omitempty"`
	ImageStatus string     `json:"image_status,omitempty"`
	ImageURIs   *ImageURIs `json:"image_uris,omitempty"`
}

type ImageURIs struct {
	Normal string `json:"normal"`
}

func (c *Card) isValid() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("field 'id' must not be empty in card %s", c.Name)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("field 'name' must not be empty in card %s", c.ID)
	}

	return nil
}

// ImageURL returns the normal sized image url or an empty string.
func (c *Card) ImageURL() string {
	if c.ImageURIs == nil {
		return ""
	}

	return c.ImageURIs.Normal
}
