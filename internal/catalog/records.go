// Package catalog holds the concrete music records the CLI can fill and
// validate without a definition file.
package catalog

import (
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Song is a single track entry.
type Song struct {
	Title  string                      `json:"title"`
	Artist string                      `json:"artist"`
	Rating int                         `json:"rating"`
	Link   validation.Optional[string] `json:"link"`
}

// Review is a short critique attached to an album.
type Review struct {
	Author string                      `json:"author"`
	Body   string                      `json:"body"`
	Stars  int                         `json:"stars"`
	Source validation.Optional[string] `json:"source"`
}

// Album groups reviews under a release. Reviews is never nil so an album
// without reviews encodes as an empty list.
type Album struct {
	Title   string   `json:"title"`
	Year    int      `json:"year"`
	Reviews []Review `json:"reviews"`
}

// WithReview returns a copy of a with r appended.
func (a Album) WithReview(r Review) Album {
	reviews := make([]Review, 0, len(a.Reviews)+1)
	reviews = append(reviews, a.Reviews...)
	a.Reviews = append(reviews, r)
	return a
}

const (
	MinRating = 1
	MaxRating = 10
	MinStars  = 1
	MaxStars  = 5
	MinYear   = 1900
	MaxYear   = 2100
	// MaxBody caps review bodies.
	MaxBody = 2000
)

const (
	SongTitle  form.Key[string]                      = "title"
	SongArtist form.Key[string]                      = "artist"
	SongRating form.Key[int]                         = "rating"
	SongLink   form.Key[validation.Optional[string]] = "link"

	ReviewAuthor form.Key[string]                      = "author"
	ReviewBody   form.Key[string]                      = "body"
	ReviewStars  form.Key[int]                         = "stars"
	ReviewSource form.Key[validation.Optional[string]] = "source"

	AlbumTitle form.Key[string] = "title"
	AlbumYear  form.Key[int]    = "year"
)

// NewSongForm returns an empty song form.
func NewSongForm() *form.Form {
	f := form.New("song")
	mustAttach(f, SongTitle, field.New(validation.RequiredText, ""), "Title")
	mustAttach(f, SongArtist, field.New(validation.RequiredText, ""), "Artist")
	mustAttach(f, SongRating, field.New(validation.RequiredInt(MinRating, MaxRating), ""), "Rating")
	mustAttach(f, SongLink, field.New(validation.OptionalURL, ""), "Link")
	return f
}

// SubmitSong builds a Song from a valid song form.
func SubmitSong(f *form.Form) (Song, error) {
	return form.Apply4(f, SongTitle, SongArtist, SongRating, SongLink, newSong)
}

func newSong(title, artist string, rating int, link validation.Optional[string]) Song {
	return Song{Title: title, Artist: artist, Rating: rating, Link: link}
}

// NewReviewForm returns a review form with stars preset to the middle of
// the scale.
func NewReviewForm() *form.Form {
	f := form.New("review")
	mustAttach(f, ReviewAuthor, field.New(validation.RequiredText, ""), "Author")
	mustAttach(f, ReviewBody, field.New(validation.MaxLength(validation.RequiredText, MaxBody), ""), "Review")
	mustAttach(f, ReviewStars, field.New(validation.RequiredInt(MinStars, MaxStars), "3"), "Stars")
	mustAttach(f, ReviewSource, field.New(validation.OptionalURL, ""), "Source")
	return f
}

// SubmitReview builds a Review from a valid review form.
func SubmitReview(f *form.Form) (Review, error) {
	return form.Apply4(f, ReviewAuthor, ReviewBody, ReviewStars, ReviewSource, newReview)
}

func newReview(author, body string, stars int, source validation.Optional[string]) Review {
	return Review{Author: author, Body: body, Stars: stars, Source: source}
}

// NewAlbumForm returns an empty album form. Reviews are added to the
// submitted record, not through the form.
func NewAlbumForm() *form.Form {
	f := form.New("album")
	mustAttach(f, AlbumTitle, field.New(validation.RequiredText, ""), "Title")
	mustAttach(f, AlbumYear, field.New(validation.RequiredInt(MinYear, MaxYear), ""), "Year")
	return f
}

// SubmitAlbum builds an Album with no reviews from a valid album form.
func SubmitAlbum(f *form.Form) (Album, error) {
	return form.Apply2(f, AlbumTitle, AlbumYear, newAlbum)
}

func newAlbum(title string, year int) Album {
	return Album{Title: title, Year: year, Reviews: []Review{}}
}

func mustAttach[T any](f *form.Form, key form.Key[T], fld *field.Field[T], label string) {
	if err := form.Attach(f, key, fld, form.WithLabel(label)); err != nil {
		panic(err)
	}
}
