package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTierOrdinal(t *testing.T) {
	assert.Equal(t, 1, PriceLow.Ordinal())
	assert.Equal(t, 2, PriceMedium.Ordinal())
	assert.Equal(t, 3, PriceHigh.Ordinal())
	assert.Equal(t, 0, PriceTier("$$$$").Ordinal())
	assert.False(t, PriceTier("").Valid())
}

func TestProfileUnmarshalAcceptsSnakePriceRange(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"x","price_range":"$$$"}`), &p))
	assert.Equal(t, PriceHigh, p.PriceRange)
	assert.Equal(t, int64(3), p.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"priceRange":"$","price_range":"$$$"}`), &p))
	assert.Equal(t, PriceLow, p.PriceRange)
}

func TestValidateProfile(t *testing.T) {
	ok := SampleProfiles()[0]
	require.NoError(t, ValidateProfile(ok, nil))

	bad := ok
	bad.Rating = 5.5
	bad.PriceRange = "cheap"
	bad.Projects = -1
	err := ValidateProfile(bad, nil)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Problems, 3)
}

func TestDecodeProfiles(t *testing.T) {
	raw, err := json.Marshal(SampleProfiles())
	require.NoError(t, err)

	ps, err := DecodeProfiles(raw)
	require.NoError(t, err)
	assert.Len(t, ps, 3)

	single, err := json.Marshal(SampleProfiles()[1])
	require.NoError(t, err)
	ps, err = DecodeProfiles(single)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Studio - D3", ps[0].Name)
}

func TestDecodeProfilesReportsMissingFields(t *testing.T) {
	_, err := DecodeProfiles([]byte(`[{"name":"only a name"}]`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "designer 1: missing required field: rating")
	assert.Contains(t, ve.Error(), "designer 1: missing required field: portfolio")
}

func TestDecodeProfileSingleObject(t *testing.T) {
	raw, err := json.Marshal(SampleProfiles()[2])
	require.NoError(t, err)
	p, err := DecodeProfile(raw)
	require.NoError(t, err)
	assert.Equal(t, SampleProfiles()[2].Name, p.Name)

	var ve *ValidationError
	_, err = DecodeProfile([]byte("[" + string(raw) + "]"))
	require.True(t, errors.As(err, &ve))

	_, err = DecodeProfile([]byte(`{"name":"Nook"}`))
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Problems, "designer 1: missing required field: location")
}
