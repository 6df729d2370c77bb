package catalog

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formfield/pkg/form"
)

// ErrUnknownForm is returned by Lookup when no built-in form matches.
var ErrUnknownForm = errors.New("catalog: unknown form")

// Definition describes a built-in form the CLI can drive.
type Definition struct {
	ID    string
	Title string
	New   func() *form.Form
	// Submit builds the record of a filled form.
	Submit func(*form.Form) (any, error)
}

var definitions = []Definition{
	{ID: "song", Title: "Song", New: NewSongForm, Submit: erase(SubmitSong)},
	{ID: "review", Title: "Album review", New: NewReviewForm, Submit: erase(SubmitReview)},
	{ID: "album", Title: "Album", New: NewAlbumForm, Submit: erase(SubmitAlbum)},
}

// Definitions lists the built-in forms in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the built-in form with the given id.
func Lookup(id string) (Definition, error) {
	for _, def := range definitions {
		if def.ID == id {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
}

func erase[R any](submit func(*form.Form) (R, error)) func(*form.Form) (any, error) {
	return func(f *form.Form) (any, error) {
		record, err := submit(f)
		if err != nil {
			return nil, err
		}
		return record, nil
	}
}
