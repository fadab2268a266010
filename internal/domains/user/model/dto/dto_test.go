package dto_test

import (
	"hotelops/internal/domains/user/model"
	"hotelops/internal/domains/user/model/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_ToModel(t *testing.T) {
	propertyID := "p1"
	req := dto.CreateUserRequest{Email: " Manager@Hotel.TEST ", Name: " Ana ", Role: model.RoleManager, PropertyID: &propertyID}

	credential, user := req.ToModel("hash")

	assert.Equal(t, "manager@hotel.test", credential.Email)
	assert.Equal(t, "hash", credential.PasswordHash)
	assert.Equal(t, credential.ID, user.AuthID)
	assert.NotEqual(t, credential.ID, user.ID)
	assert.Equal(t, "Ana", user.Name)
	require.NotNil(t, user.PropertyID)
	assert.Equal(t, "p1", *user.PropertyID)

	propertyID = "p2"
	assert.Equal(t, "p1", *user.PropertyID)
}

func TestGetUsersResponse_FromModels(t *testing.T) {
	propertyID := "p1"
	res := dto.GetUsersResponse{}
	res.FromModels([]model.User{
		{ID: "u1", Role: model.RoleAdmin},
		{ID: "u2", Role: model.RoleStaff, PropertyID: &propertyID},
	}, 21, 10)

	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 21, res.TotalData)
	assert.Empty(t, res.Users[0].PropertyID)
	assert.Equal(t, "p1", res.Users[1].PropertyID)
}
