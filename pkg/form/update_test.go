package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func TestSession_Lifecycle(t *testing.T) {
	session := form.NewSession(newSongForm(t), buildSong)

	effect, err := session.Dispatch(form.Edit(keyTitle, "Naima"))
	require.NoError(t, err)
	assert.False(t, effect.Submitted)
	require.Len(t, effect.Issues, 1)
	assert.Equal(t, "rating", effect.Issues[0].Key)

	effect, err = session.Dispatch(form.SubmitRequested{})
	require.NoError(t, err)
	assert.False(t, effect.Submitted)
	require.NotNil(t, effect.Rejected)
	assert.Equal(t, []string{"Field cannot be empty, must be a number"}, effect.Rejected.Messages())

	_, err = session.Dispatch(form.InputChanged{Key: "rating", Text: "10"})
	require.NoError(t, err)

	effect, err = session.Dispatch(form.SubmitRequested{})
	require.NoError(t, err)
	assert.True(t, effect.Submitted)
	assert.Equal(t, song{Title: "Naima", Rating: 10, Link: validation.None[string]()}, effect.Record)
	assert.Equal(t, "", session.Form().Inputs()["title"], "successful submit resets")
}

func TestSession_UnknownKey(t *testing.T) {
	session := form.NewSession(newSongForm(t), buildSong)
	_, err := session.Dispatch(form.InputChanged{Key: "AlbumTitle", Text: "x"})
	require.ErrorIs(t, err, form.ErrUnknownField)
}

func TestSession_LoadedAndReset(t *testing.T) {
	session := form.NewSession(newSongForm(t), buildSong)

	effect, err := session.Dispatch(form.Loaded{Values: map[string]string{"title": "Fetched", "rating": "4", "link": "ftp://x"}})
	require.NoError(t, err)
	require.Len(t, effect.Issues, 1)
	assert.Equal(t, "This isn't a proper link", effect.Issues[0].Issue.Message)

	effect, err = session.Dispatch(form.ResetRequested{})
	require.NoError(t, err)
	assert.Len(t, effect.Issues, 2)
}
