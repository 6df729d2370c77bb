package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfield/internal/catalog"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func TestSubmitSong(t *testing.T) {
	f := catalog.NewSongForm()
	require.NoError(t, f.Prefill(map[string]string{
		"title":  "  Alabama ",
		"artist": "Neil Young",
		"rating": "9",
	}))

	song, err := catalog.SubmitSong(f)
	require.NoError(t, err)
	assert.Equal(t, catalog.Song{
		Title:  "Alabama",
		Artist: "Neil Young",
		Rating: 9,
		Link:   validation.None[string](),
	}, song)
	assert.Equal(t, []string{"title", "artist", "rating", "link"}, f.Keys())
}

func TestSubmitSong_CollectsEveryIssue(t *testing.T) {
	f := catalog.NewSongForm()
	require.NoError(t, f.Prefill(map[string]string{
		"title":  "Alabama",
		"rating": "11",
		"link":   "ftp://x",
	}))

	_, err := catalog.SubmitSong(f)
	submitErr, ok := form.AsSubmitError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		validation.MsgRequired,
		validation.MsgOutOfRange,
		validation.MsgInvalidLink,
	}, submitErr.Messages())
}

func TestReviewForm_Defaults(t *testing.T) {
	f := catalog.NewReviewForm()
	stars, ok := f.Entry("stars")
	require.True(t, ok)
	assert.True(t, stars.IsValid())
	assert.Equal(t, "3", stars.Input())

	require.NoError(t, f.Prefill(map[string]string{
		"author": "R. Christgau",
		"body":   "Loud and long.",
		"source": "https://example.com/review",
	}))
	review, err := catalog.SubmitReview(f)
	require.NoError(t, err)
	assert.Equal(t, 3, review.Stars)
	assert.Equal(t, validation.Some("https://example.com/review"), review.Source)
}

func TestAlbum_EmptyReviewsEncodeAsList(t *testing.T) {
	f := catalog.NewAlbumForm()
	require.NoError(t, f.Prefill(map[string]string{"title": "Zuma", "year": "1975"}))

	album, err := catalog.SubmitAlbum(f)
	require.NoError(t, err)
	require.NotNil(t, album.Reviews)

	raw, err := json.Marshal(album)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Zuma","year":1975,"reviews":[]}`, string(raw))

	withReview := album.WithReview(catalog.Review{Author: "a", Body: "b", Stars: 4})
	assert.Len(t, withReview.Reviews, 1)
	assert.Empty(t, album.Reviews)
}

func TestAlbum_YearRange(t *testing.T) {
	f := catalog.NewAlbumForm()
	require.NoError(t, f.Prefill(map[string]string{"title": "Zuma", "year": "1899"}))
	_, err := catalog.SubmitAlbum(f)
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	def, err := catalog.Lookup("song")
	require.NoError(t, err)
	assert.Equal(t, "song", def.New().ID())

	_, err = catalog.Lookup("playlist")
	require.ErrorIs(t, err, catalog.ErrUnknownForm)

	ids := make([]string, 0, len(catalog.Definitions()))
	for _, d := range catalog.Definitions() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"song", "review", "album"}, ids)
}

func TestDefinitionSubmit(t *testing.T) {
	def, err := catalog.Lookup("album")
	require.NoError(t, err)

	f := def.New()
	require.NoError(t, f.Prefill(map[string]string{"title": "Harvest", "year": "1972"}))
	record, err := def.Submit(f)
	require.NoError(t, err)
	assert.IsType(t, catalog.Album{}, record)
}
