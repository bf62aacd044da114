package main

import (
	"fmt"
	"strconv"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// parseID parses a positive numeric id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseRef parses an entity type and id pair from command arguments.
func parseRef(typeArg, idArg string) (entities.EntityRef, error) {
	entityType := entities.EntityType(typeArg)
	if !entityType.Valid() {
		return entities.EntityRef{}, fmt.Errorf("invalid entity type %q (use document, task, or policy)", typeArg)
	}
	id, err := parseID(idArg)
	if err != nil {
		return entities.EntityRef{}, err
	}
	return entities.EntityRef{Type: entityType, ID: id}, nil
}
