package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_CanAccess(t *testing.T) {
	admin := Session{UserID: 1, Role: RoleAdmin}
	client := Session{UserID: 2, Role: RoleClient}

	assert.True(t, admin.CanAccess(99))
	assert.True(t, client.CanAccess(2))
	assert.False(t, client.CanAccess(3))
}

func TestSession_Key(t *testing.T) {
	assert.Equal(t, "client:42", Session{UserID: 42, Role: RoleClient}.Key())
	assert.NotEqual(t, Session{UserID: 42, Role: RoleClient}.Key(), Session{UserID: 42, Role: RoleAdmin}.Key())
}
