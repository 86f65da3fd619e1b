package schema

import "github.com/balbesina228/films-api/internal/model"

// ActorRequest is the body of POST /actors and PUT /actors/{uuid}.
type ActorRequest struct {
	UUID string `param:"uuid" json:"-"`

	Name     string `json:"name" validate:"required,max=50"`
	Birthday *Date  `json:"birthday"`
	IsActive *bool  `json:"is_active"`
}

func (r *ActorRequest) Validate() error {
	return validate.Struct(r)
}

// Load builds a new actor; is_active defaults to true.
func (r *ActorRequest) Load() *model.Actor {
	a := &model.Actor{IsActive: true}
	r.Merge(a)
	return a
}

// Merge writes the request into an existing actor, leaving absent
// optional fields untouched.
func (r *ActorRequest) Merge(a *model.Actor) {
	a.Name = r.Name
	if r.Birthday != nil {
		a.Birthday = r.Birthday.TimePtr()
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
}

// ActorLinkRequest binds PUT/DELETE /actors/{uuid}/films/{film_uuid}.
type ActorLinkRequest struct {
	UUID     string `param:"uuid" json:"-"`
	FilmUUID string `param:"film_uuid" json:"-"`
}

func (*ActorLinkRequest) Validate() error { return nil }

// ActorResponse is the wire representation of an actor.
type ActorResponse struct {
	UUID     string        `json:"uuid"`
	Name     string        `json:"name"`
	Birthday *Date         `json:"birthday"`
	IsActive bool          `json:"is_active"`
	Films    []FilmSummary `json:"films"`
}

// ActorSummary is an actor nested inside a film.
type ActorSummary struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday"`
	IsActive bool   `json:"is_active"`
}

// DumpActor converts a into its wire representation.
func DumpActor(a *model.Actor) ActorResponse {
	films := make([]FilmSummary, 0, len(a.Films))
	for i := range a.Films {
		films = append(films, summarizeFilm(&a.Films[i]))
	}

	return ActorResponse{
		UUID:     a.UUID.String(),
		Name:     a.Name,
		Birthday: NewDate(a.Birthday),
		IsActive: a.IsActive,
		Films:    films,
	}
}

// DumpActors converts a list of actors, encoding an empty list as [].
func DumpActors(actors []model.Actor) []ActorResponse {
	out := make([]ActorResponse, 0, len(actors))
	for i := range actors {
		out = append(out, DumpActor(&actors[i]))
	}
	return out
}

func summarizeActor(a *model.Actor) ActorSummary {
	return ActorSummary{
		UUID:     a.UUID.String(),
		Name:     a.Name,
		Birthday: NewDate(a.Birthday),
		IsActive: a.IsActive,
	}
}
