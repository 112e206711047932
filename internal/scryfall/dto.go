package scryfall

import (
	"strings"

	"github.com/konstantinfoerster/deck-diff-go/internal/cards"
)

type Card struct {
	ID              string     `json:"id"`
	OracleID        string     `json:"oracle_id"`
	Name            string     `json:"name"`
	Lang            string     `json:"lang"`
	Set             string     `json:"set"`
	CollectorNumber string     `json:"collector_number"`
	ImageStatus     string     `json:"image_status"`
	ImgUris         *ImgURIs   `json:"image_uris"`
	Faces           []CardFace `json:"card_faces"`
}

type ImgURIs struct {
	Normal string `json:"normal"`
}

type CardFace struct {
	Name    string   `json:"name"`
	ImgUris *ImgURIs `json:"image_uris"`
}

// FindURL returns the normal image url of the face with the given name.
// Falls back to the image of the whole card and then to the first face that has an image.
func (sc Card) FindURL(name string) string {
	for _, f := range sc.Faces {
		if strings.EqualFold(f.Name, name) && f.ImgUris != nil && f.ImgUris.Normal != "" {
			return f.ImgUris.Normal
		}
	}

	// fallback to top img
	if sc.ImgUris != nil && sc.ImgUris.Normal != "" {
		return sc.ImgUris.Normal
	}

	for _, f := range sc.Faces {
		if f.ImgUris != nil && f.ImgUris.Normal != "" {
			return f.ImgUris.Normal
		}
	}

	return ""
}

func (sc Card) toCard() cards.Card {
	c := cards.Card{
		ID:          sc.ID,
		Name:        sc.Name,
		SetCode:     strings.ToUpper(sc.Set),
		Number:      sc.CollectorNumber,
		ImageStatus: sc.ImageStatus,
	}
	if url := sc.FindURL(sc.Name); url != "" {
		c.ImageURIs = &cards.ImageURIs{Normal: url}
	}

	return c
}

// BulkData Describes one downloadable bulk file, e.g. oracle_cards or default_cards.
type BulkData struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	UpdatedAt       string `json:"updated_at"`
	DownloadURI     string `json:"download_uri"`
	Size            int64  `json:"size"`
	ContentType     string `json:"content_type"`
	ContentEncoding string `json:"content_encoding"`
}
