package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id
}
