package mtgjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

var setCodeRegex = regexp.MustCompile("^[A-Z0-9]{3,10}$")

// parse sends every card of every set below the "data" key to out. It stops with ctx.Err() when ctx is done.
func parse(ctx context.Context, r io.Reader, out chan<- *mtgjsonCard) error {
	dec := json.NewDecoder(r)

	if err := expectNext(json.Delim('{'), dec); err != nil {
		return err
	}

	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}

		if t != "data" {
			if err := skip(dec); err != nil {
				return err
			}

			continue
		}

		if err := expectNext(json.Delim('{'), dec); err != nil {
			return err
		}

		for dec.More() {
			t, err := dec.Token() // 10E
			if err != nil {
				return err
			}
			if !isSetCode(t) {
				if err := skip(dec); err != nil {
					return err
				}

				continue
			}

			if err := parseSet(ctx, dec, out); err != nil {
				return err
			}
		}

		if err := expectNext(json.Delim('}'), dec); err != nil {
			return err
		}
	}

	return nil
}

func parseSet(ctx context.Context, dec *json.Decoder, out chan<- *mtgjsonCard) error {
	if err := expectNext(json.Delim('{'), dec); err != nil {
		return err
	}

	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}

		if t != "cards" {
			if err := skip(dec); err != nil {
				return err
			}

			continue
		}

		if err := expectNext(json.Delim('['), dec); err != nil {
			return err
		}

		for dec.More() {
			var card *mtgjsonCard
			if err := dec.Decode(&card); err != nil {
				return err
			}
			if card == nil {
				continue
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- card:
			}
		}

		if err := expectNext(json.Delim(']'), dec); err != nil {
			return err
		}
	}

	return expectNext(json.Delim('}'), dec)
}

func expectNext(expected json.Delim, dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to get next token %w", err)
	}

	if t != expected {
		return fmt.Errorf("expected token to be %v but found %v", expected, t)
	}

	return nil
}

// skip consumes the next value including all nested values.
func skip(dec *json.Decoder) error {
	n := 0
	for {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		switch t {
		case json.Delim('['), json.Delim('{'):
			n++
		case json.Delim(']'), json.Delim('}'):
			n--
		}
		if n == 0 {
			return nil
		}
	}
}

func isSetCode(t json.Token) bool {
	key, ok := t.(string)

	return ok && setCodeRegex.MatchString(key)
}
