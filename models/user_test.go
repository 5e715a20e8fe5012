package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRoleChangeRequiresAffiliationForStaff(t *testing.T) {
	u := User{Role: RoleGuest}

	err := u.ApplyRoleChange(RoleManager, nil)
	assert.ErrorIs(t, err, ErrMissingAffiliation)
	assert.Equal(t, RoleGuest, u.Role)

	err = u.ApplyRoleChange(RoleReceptionist, nil)
	assert.ErrorIs(t, err, ErrMissingAffiliation)

	hotelID := uint(7)
	err = u.ApplyRoleChange(RoleManager, &hotelID)
	assert.NoError(t, err)
	assert.Equal(t, RoleManager, u.Role)
	if assert.NotNil(t, u.HotelID) {
		assert.Equal(t, uint(7), *u.HotelID)
	}
}

func TestApplyRoleChangeKeepsExistingAffiliation(t *testing.T) {
	hotelID := uint(3)
	u := User{Role: RoleReceptionist, HotelID: &hotelID}

	err := u.ApplyRoleChange(RoleManager, nil)
	assert.NoError(t, err)
	assert.Equal(t, RoleManager, u.Role)
	if assert.NotNil(t, u.HotelID) {
		assert.Equal(t, uint(3), *u.HotelID)
	}
}

func TestApplyRoleChangeClearsAffiliation(t *testing.T) {
	hotelID := uint(3)

	for _, role := range []Role{RoleGuest, RoleAdmin, RoleOwner} {
		u := User{Role: RoleManager, HotelID: &hotelID}
		err := u.ApplyRoleChange(role, &hotelID)
		assert.NoError(t, err)
		assert.Equal(t, role, u.Role)
		assert.Nil(t, u.HotelID, "role %s must not keep a stored affiliation", role)
	}
}

func TestApplyRoleChangeRejectsUnknownRole(t *testing.T) {
	u := User{Role: RoleGuest}
	assert.Error(t, u.ApplyRoleChange(Role("admin"), nil)) // wrong case is not a role
}
