package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arushi-dev/vastra-api/models"
)

func TestCreateAddressSnapshotsProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{}, zap.NewNop())

	user := seedUser(t, db, "u1")

	address, svcErr := svc.CreateAddress(context.Background(), CreateAddressInput{
		UserID:  user.ID,
		Name:    "ignored",
		Email:   "ignored@example.com",
		Phone:   "0000000000",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	})
	require.Nil(t, svcErr)

	// Profile fields win over whatever the client submitted.
	assert.Equal(t, user.Name, address.Name)
	assert.Equal(t, user.Email, address.Email)
	assert.Equal(t, user.Phone, address.Phone)

	// Editing the profile later does not rewrite the snapshot.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("name", "Renamed").Error)
	var stored models.Address
	require.NoError(t, db.First(&stored, address.ID).Error)
	assert.Equal(t, user.Name, stored.Name)
}

func TestCreateAddressGuestSuppliesContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{}, zap.NewNop())

	guest := seedGuest(t, db, "guest_abc", time.Now().Add(time.Hour))

	// Missing contact details are rejected for identities without a profile.
	_, svcErr := svc.CreateAddress(context.Background(), CreateAddressInput{
		UserID:  guest.ID,
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindInvalid, svcErr.Kind)

	address, svcErr := svc.CreateAddress(context.Background(), CreateAddressInput{
		UserID:  guest.ID,
		Name:    "Guest Buyer",
		Email:   "guest@example.com",
		Phone:   "9876543210",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "Guest Buyer", address.Name)
}

func TestCreateAddressUnserviceablePincodeInsertsNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{unserviceable: map[string]bool{"797112": true}}, zap.NewNop())

	user := seedUser(t, db, "u1")

	_, svcErr := svc.CreateAddress(context.Background(), CreateAddressInput{
		UserID:  user.ID,
		Line1:   "Village Road",
		City:    "Phek",
		State:   "Nagaland",
		Pincode: "797112",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindNotServiceable, svcErr.Kind)

	var count int64
	require.NoError(t, db.Model(&models.Address{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAddressPincodeFormat(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{}, zap.NewNop())

	user := seedUser(t, db, "u1")

	for _, pin := range []string{"", "12345", "1234567", "056001", "56000a"} {
		_, svcErr := svc.CreateAddress(context.Background(), CreateAddressInput{
			UserID:  user.ID,
			Line1:   "14 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: pin,
		})
		require.NotNil(t, svcErr, "pincode %q", pin)
		assert.Equal(t, KindInvalid, svcErr.Kind)
	}
}

func TestDeleteAddressOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{}, zap.NewNop())

	owner := seedUser(t, db, "owner")
	stranger := seedUser(t, db, "stranger")
	address := seedAddress(t, db, owner.ID)

	// Someone else's delete is indistinguishable from a miss, and deletes nothing.
	svcErr := svc.DeleteAddress(context.Background(), stranger.ID, address.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)

	var count int64
	require.NoError(t, db.Model(&models.Address{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.Nil(t, svc.DeleteAddress(context.Background(), owner.ID, address.ID))
	require.NoError(t, db.Model(&models.Address{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListAddresses(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, &fakePincode{}, zap.NewNop())

	user := seedUser(t, db, "u1")
	other := seedUser(t, db, "u2")
	seedAddress(t, db, user.ID)
	seedAddress(t, db, user.ID)
	seedAddress(t, db, other.ID)

	addresses, svcErr := svc.ListAddresses(context.Background(), user.ID)
	require.Nil(t, svcErr)
	assert.Len(t, addresses, 2)
	for _, a := range addresses {
		assert.Equal(t, user.ID, a.UserID)
	}
}
