package services

import (
	"fmt"
	"strings"

	"github.com/bhujal/registry/internal/models"
	appErr "github.com/bhujal/registry/pkg/errors"
)

// Action names a borewell mutation for authorization messages.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AuthorizeMutation allows a mutation only when requesterID is the record's
// owner. IDs are compared in canonical string form. Callers must have
// already confirmed the record exists.
func AuthorizeMutation(requesterID string, record *models.Borewell, action Action) error {
	if record != nil && strings.EqualFold(strings.TrimSpace(requesterID), record.CustomerID.String()) {
		return nil
	}
	return appErr.New(appErr.CodeForbidden, fmt.Sprintf("Not authorized to %s this borewell", action))
}
