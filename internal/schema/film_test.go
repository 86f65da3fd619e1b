package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func decodeFilmRequest(t *testing.T, body string) *FilmRequest {
	t.Helper()
	var r FilmRequest
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return &r
}

func TestFilmRequestLoad(t *testing.T) {
	r := decodeFilmRequest(t, `{
		"title": "TEST TITLE",
		"distributed_by": "TEST COMPANY",
		"release_date": "2010-04-01",
		"description": "",
		"length": 100,
		"rating": 8.1
	}`)
	require.NoError(t, r.Validate())

	f := r.Load()
	assert.Equal(t, "TEST TITLE", f.Title)
	require.NotNil(t, f.ReleaseDate)
	assert.Equal(t, time.Date(2010, time.April, 1, 0, 0, 0, 0, time.UTC), *f.ReleaseDate)
	assert.Equal(t, "TEST COMPANY", *f.DistributedBy)
	assert.Equal(t, "", *f.Description)
	assert.Equal(t, 100, *f.Length)
	assert.Equal(t, 8.1, *f.Rating)
}

func TestFilmRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"length": 100}`, "title"},
		{"title too long", `{"title": "` + strings.Repeat("a", 121) + `"}`, "title"},
		{"rating above 10", `{"title": "x", "rating": 10.5}`, "rating"},
		{"negative length", `{"title": "x", "length": -1}`, "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r FilmRequest
			_ = json.Unmarshal([]byte(tt.body), &r)

			err := r.Validate()
			require.Error(t, err)

			fieldErrors := validation.ExtractFieldErrors(err)
			require.Len(t, fieldErrors, 1)
			assert.Equal(t, tt.field, fieldErrors[0].Field)
		})
	}
}

func TestFilmRequestBadDate(t *testing.T) {
	var r FilmRequest
	err := json.Unmarshal([]byte(`{"title":"x","release_date":"April 01 2010"}`), &r)
	assert.Error(t, err)
}

func TestFilmRequestMergeKeepsAbsentFields(t *testing.T) {
	existing := &model.Film{
		Title:       "Old",
		Description: ptr("kept"),
		Length:      ptr(90),
	}

	r := decodeFilmRequest(t, `{"title":"Updated title","distributed_by":"Update","release_date":"2010-04-01"}`)
	require.NoError(t, r.Validate())
	r.Merge(existing)

	assert.Equal(t, "Updated title", existing.Title)
	assert.Equal(t, "Update", *existing.DistributedBy)
	assert.Equal(t, "kept", *existing.Description)
	assert.Equal(t, 90, *existing.Length)
}

func decodePatch(t *testing.T, body string) *FilmPatch {
	t.Helper()
	var p FilmPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.NoError(t, p.Validate())
	return &p
}

func TestFilmPatchFirstMatchWins(t *testing.T) {
	f := &model.Film{Title: "Old", Length: ptr(90)}

	changed := decodePatch(t, `{"title":"X","length":5}`).Apply(f)

	assert.True(t, changed)
	assert.Equal(t, "X", f.Title)
	assert.Equal(t, 90, *f.Length)
}

func TestFilmPatchSkipsZeroValues(t *testing.T) {
	f := &model.Film{Title: "Old"}

	changed := decodePatch(t, `{"title":"","description":"","length":0,"rating":7.5}`).Apply(f)

	assert.True(t, changed)
	assert.Equal(t, "Old", f.Title)
	assert.Nil(t, f.Description)
	assert.Nil(t, f.Length)
	assert.Equal(t, 7.5, *f.Rating)
}

func TestFilmPatchReleaseDate(t *testing.T) {
	f := &model.Film{Title: "Old"}

	decodePatch(t, `{"release_date":"April 01 2010","rating":3}`).Apply(f)

	require.NotNil(t, f.ReleaseDate)
	assert.Equal(t, time.Date(2010, time.April, 1, 0, 0, 0, 0, time.UTC), *f.ReleaseDate)
	assert.Nil(t, f.Rating)
}

func TestFilmPatchInvalidReleaseDate(t *testing.T) {
	var p FilmPatch
	require.NoError(t, json.Unmarshal([]byte(`{"release_date":"2010-04-01"}`), &p))

	err := p.Validate()
	var custom validation.CustomValidationErrors
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, "release_date", custom[0].Field)
}

func TestFilmPatchNothingToApply(t *testing.T) {
	f := &model.Film{Title: "Old"}
	assert.False(t, decodePatch(t, `{"unknown":"field"}`).Apply(f))
	assert.Equal(t, "Old", f.Title)
}

func TestDumpFilm(t *testing.T) {
	id := uuid.New()
	actorID := uuid.New()
	release := time.Date(1979, time.May, 25, 0, 0, 0, 0, time.UTC)

	f := &model.Film{
		Base:        model.Base{ID: 7, UUID: id},
		Title:       "Alien",
		ReleaseDate: &release,
		Rating:      ptr(8.5),
		Actors: []model.Actor{
			{Base: model.Base{UUID: actorID}, Name: "Sigourney Weaver", IsActive: true},
		},
	}

	body, err := json.Marshal(DumpFilm(f))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"uuid": "`+id.String()+`",
		"title": "Alien",
		"release_date": "1979-05-25",
		"distributed_by": null,
		"description": null,
		"length": null,
		"rating": 8.5,
		"actors": [
			{"uuid": "`+actorID.String()+`", "name": "Sigourney Weaver", "birthday": null, "is_active": true}
		]
	}`, string(body))
}

func TestDumpFilmsEmpty(t *testing.T) {
	body, err := json.Marshal(DumpFilms(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestFilmListQuery(t *testing.T) {
	tests := []struct {
		raw        string
		withActors bool
	}{
		{raw: "", withActors: true},
		{raw: "true", withActors: true},
		{raw: "1", withActors: true},
		{raw: "false", withActors: false},
		{raw: "0", withActors: false},
	}

	for _, tt := range tests {
		q := &FilmListQuery{WithActors: tt.raw}
		require.NoError(t, q.Validate(), tt.raw)
		assert.Equal(t, tt.withActors, q.Query().WithActors, tt.raw)
	}

	assert.Error(t, (&FilmListQuery{WithActors: "maybe"}).Validate())
}
