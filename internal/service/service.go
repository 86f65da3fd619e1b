// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated request schemas, services resolve uuids, apply them to the
// entities and persist them through the repository stores.
package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/repository"
)

// parseUUID treats an unparsable path uuid as an absent resource.
func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewEmptyNotFoundError()
	}
	return id, nil
}

// notFound converts repository.ErrNotFound into the body-less 404 and
// passes every other error through to the global error handler.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewEmptyNotFoundError()
	}
	return err
}
