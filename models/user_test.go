package models_test

import (
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateUserRequest_ApplyMergesNonNilFields(t *testing.T) {
	user := &models.User{ID: "u1", Name: "jane", Email: "jane@example.com", ProfilePicture: "old.png"}
	name := "Jane Doe"

	models.UpdateUserRequest{Name: &name}.Apply(user)

	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "old.png", user.ProfilePicture)
	assert.Equal(t, "u1", user.ID)
}

func TestUpdateUserRequest_ApplyEmptyIsNoop(t *testing.T) {
	user := &models.User{ID: "u1", Name: "jane", Email: "jane@example.com", IsAdmin: true}
	before := *user

	models.UpdateUserRequest{}.Apply(user)

	assert.Equal(t, before, *user)
}
