package model

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrop_EffectivePrice_ResolutionOrder(t *testing.T) {
	crop := Crop{
		FarmerPrice:      Float(10),
		DistributorPrice: Float(20),
		RetailerPrice:    Float(30),
		Price:            Float(40),
	}
	assert.Equal(t, 40.0, crop.EffectivePrice())

	crop.Price = nil
	assert.Equal(t, 30.0, crop.EffectivePrice())

	crop.RetailerPrice = nil
	assert.Equal(t, 20.0, crop.EffectivePrice())

	crop.DistributorPrice = nil
	assert.Equal(t, 10.0, crop.EffectivePrice())

	crop.FarmerPrice = nil
	assert.Equal(t, 0.0, crop.EffectivePrice())
}

func TestCrop_Clone_DetachesPointerFields(t *testing.T) {
	orig := Crop{
		ID:        "c1",
		Price:     Float(12.5),
		AIScore:   Float(91),
		AIVerdict: String("Fresh"),
	}
	cp := orig.Clone()

	*cp.Price = 99
	*cp.AIScore = 1
	*cp.AIVerdict = "Rotten"

	assert.Equal(t, 12.5, *orig.Price)
	assert.Equal(t, 91.0, *orig.AIScore)
	assert.Equal(t, "Fresh", *orig.AIVerdict)
}

func TestEightDigitCode_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := EightDigitCode()
		require.Len(t, code, 8)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000000)
		assert.LessOrEqual(t, n, 99999999)
	}
}

func TestParseRole_AcceptsKeysAndDisplayNames(t *testing.T) {
	assert.Equal(t, RoleDistributor, ParseRole("distributor"))
	assert.Equal(t, RoleDistributor, ParseRole("Distributor"))
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, Role("weird"), ParseRole("weird"))
}

func TestUser_CanActOn_MatchesStageToRole(t *testing.T) {
	crop := func(s CropStatus) Crop { return Crop{Status: s} }

	assert.True(t, User{Role: RoleFarmer}.CanActOn(crop(StatusPlanted)))
	assert.True(t, User{Role: RoleDistributor}.CanActOn(crop(StatusAtDistributor)))
	assert.True(t, User{Role: RoleRetailer}.CanActOn(crop(StatusAtRetailer)))
	assert.True(t, User{Role: RoleConsumer}.CanActOn(crop(StatusAvailableForSale)))

	assert.False(t, User{Role: RoleFarmer}.CanActOn(crop(StatusSold)))
	assert.False(t, User{Role: RoleAdmin}.CanActOn(crop(StatusPlanted)))
	assert.False(t, User{Role: RoleConsumer}.CanActOn(crop(StatusAtRetailer)))
}
