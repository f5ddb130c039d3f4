package domain

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func TestContractedServices_Decode(t *testing.T) {
	payload := `{
		"channels": ["instagram", "facebook"],
		"package_name": "Premium",
		"start_date": "2024-01-15",
		"renewal_date": "2025-01-15T00:00:00+00:00",
		"monthly_fee": 500
	}`

	var services ContractedServices
	require.NoError(t, json.Unmarshal([]byte(payload), &services))
	services.Normalize()

	assert.Equal(t, []string{"instagram", "facebook"}, services.Channels)
	require.NotNil(t, services.PackageName)
	assert.Equal(t, "Premium", *services.PackageName)
	assert.Equal(t, NewDate(2024, time.January, 15).Time, services.StartDate.Time)
	assert.Equal(t, NewDate(2025, time.January, 15).Time, services.RenewalDate.Time)
	assert.True(t, services.MonthlyFee.Equal(decimal.NewFromInt(500)))
	assert.NoError(t, services.Validate())

	assert.True(t, services.HasChannel("facebook"))
	assert.False(t, services.HasChannel("tiktok"))
}

func TestContractedServices_NormalizeTreatsChannelsAsSet(t *testing.T) {
	services := ContractedServices{Channels: []string{"instagram", " ", "instagram", "tiktok ", "facebook"}}
	services.Normalize()
	assert.Equal(t, []string{"instagram", "tiktok", "facebook"}, services.Channels)

	empty := ContractedServices{}
	empty.Normalize()
	assert.NotNil(t, empty.Channels)
	assert.Empty(t, empty.Channels)

	out, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"channels":[]}`, string(out))
}

func TestContractedServices_Validate(t *testing.T) {
	fee := decimal.RequireFromString("-10.50")
	services := ContractedServices{MonthlyFee: &fee}
	assert.ErrorIs(t, services.Validate(), ErrNegativeMonthlyFee)

	var nilServices *ContractedServices
	assert.False(t, nilServices.HasChannel("instagram"))
}

func TestDate_JSON(t *testing.T) {
	out, err := json.Marshal(NewDate(2024, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(out))

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2024"`), &d))
}
