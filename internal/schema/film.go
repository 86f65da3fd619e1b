package schema

import (
	"strconv"
	"time"

	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/validation"
)

// PatchDateLayout is the release_date format accepted by PATCH, e.g.
// "April 01 2010".
const PatchDateLayout = "January 2 2006"

// FilmRequest is the body of POST /films and PUT /films/{uuid}.
type FilmRequest struct {
	UUID string `param:"uuid" json:"-"`

	Title         string   `json:"title" validate:"required,max=120"`
	ReleaseDate   *Date    `json:"release_date"`
	DistributedBy *string  `json:"distributed_by" validate:"omitempty,max=120"`
	Description   *string  `json:"description"`
	Length        *int     `json:"length" validate:"omitempty,gte=0"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

func (r *FilmRequest) Validate() error {
	return validate.Struct(r)
}

// Load builds a new film from the request. The uuid is assigned by the
// persistence layer.
func (r *FilmRequest) Load() *model.Film {
	f := &model.Film{}
	r.Merge(f)
	return f
}

// Merge writes the request into an existing film. Title is always
// replaced; optional fields are replaced only when present in the body.
func (r *FilmRequest) Merge(f *model.Film) {
	f.Title = r.Title
	if r.ReleaseDate != nil {
		f.ReleaseDate = r.ReleaseDate.TimePtr()
	}
	if r.DistributedBy != nil {
		f.DistributedBy = r.DistributedBy
	}
	if r.Description != nil {
		f.Description = r.Description
	}
	if r.Length != nil {
		f.Length = r.Length
	}
	if r.Rating != nil {
		f.Rating = r.Rating
	}
}

// FilmListQuery binds the query string of GET /films. Actors are loaded
// unless with_actors is false.
type FilmListQuery struct {
	WithActors string `query:"with_actors" validate:"omitempty,oneof=true false 1 0"`
}

func (q *FilmListQuery) Validate() error {
	return validate.Struct(q)
}

func (q *FilmListQuery) Query() model.FilmQuery {
	withActors, err := strconv.ParseBool(q.WithActors)
	return model.FilmQuery{WithActors: err != nil || withActors}
}

// FilmPatch is the body of PATCH /films/{uuid}.
//
// Only one field is ever applied: the first one, in declaration order,
// that is present and non-zero.
type FilmPatch struct {
	UUID string `param:"uuid" json:"-"`

	Title         *string  `json:"title" validate:"omitempty,max=120"`
	ReleaseDate   *string  `json:"release_date"`
	DistributedBy *string  `json:"distributed_by" validate:"omitempty,max=120"`
	Description   *string  `json:"description"`
	Length        *int     `json:"length" validate:"omitempty,gte=0"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`

	releaseDate *time.Time
}

func (p *FilmPatch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.ReleaseDate != nil && *p.ReleaseDate != "" {
		t, err := time.Parse(PatchDateLayout, *p.ReleaseDate)
		if err != nil {
			return validation.CustomValidationErrors{{
				Field:   "release_date",
				Message: `must look like "April 01 2010"`,
			}}
		}
		p.releaseDate = &t
	}

	return nil
}

// Apply writes the first present, non-zero field into f and reports
// whether anything changed. Validate must have been called first.
func (p *FilmPatch) Apply(f *model.Film) bool {
	switch {
	case p.Title != nil && *p.Title != "":
		f.Title = *p.Title
	case p.releaseDate != nil:
		f.ReleaseDate = p.releaseDate
	case p.DistributedBy != nil && *p.DistributedBy != "":
		f.DistributedBy = p.DistributedBy
	case p.Description != nil && *p.Description != "":
		f.Description = p.Description
	case p.Length != nil && *p.Length != 0:
		f.Length = p.Length
	case p.Rating != nil && *p.Rating != 0:
		f.Rating = p.Rating
	default:
		return false
	}
	return true
}

// FilmResponse is the wire representation of a film.
type FilmResponse struct {
	UUID          string         `json:"uuid"`
	Title         string         `json:"title"`
	ReleaseDate   *Date          `json:"release_date"`
	DistributedBy *string        `json:"distributed_by"`
	Description   *string        `json:"description"`
	Length        *int           `json:"length"`
	Rating        *float64       `json:"rating"`
	Actors        []ActorSummary `json:"actors"`
}

// FilmSummary is a film nested inside an actor.
type FilmSummary struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	ReleaseDate *Date  `json:"release_date"`
}

// DumpFilm converts f into its wire representation.
func DumpFilm(f *model.Film) FilmResponse {
	actors := make([]ActorSummary, 0, len(f.Actors))
	for i := range f.Actors {
		actors = append(actors, summarizeActor(&f.Actors[i]))
	}

	return FilmResponse{
		UUID:          f.UUID.String(),
		Title:         f.Title,
		ReleaseDate:   NewDate(f.ReleaseDate),
		DistributedBy: f.DistributedBy,
		Description:   f.Description,
		Length:        f.Length,
		Rating:        f.Rating,
		Actors:        actors,
	}
}

// DumpFilms converts a list of films; an empty input yields an empty,
// non-nil slice so it encodes as [].
func DumpFilms(films []model.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for i := range films {
		out = append(out, DumpFilm(&films[i]))
	}
	return out
}

func summarizeFilm(f *model.Film) FilmSummary {
	return FilmSummary{
		UUID:        f.UUID.String(),
		Title:       f.Title,
		ReleaseDate: NewDate(f.ReleaseDate),
	}
}
