package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivro/shipcore/pkg/shipping"
)

func TestPackagePresetPrecedence(t *testing.T) {
	preset := PackagePreset{
		Width:  fptr(10),
		Height: fptr(10),
		Length: fptr(10),
		Weight: fptr(2),
	}
	parcel := shipping.Parcel{
		Width:         fptr(99),
		Weight:        fptr(99),
		WeightUnit:    "KG",
		DimensionUnit: "CM",
	}

	pkg := NewPackage(parcel, &preset)

	// The preset value wins for every attribute it defines, but the unit
	// follows the parcel because the parcel supplied raw values.
	require.NotNil(t, pkg.Width().Value())
	assert.Equal(t, 10.0, *pkg.Width().Value())
	assert.Equal(t, CM, pkg.DimensionUnit())
	require.NotNil(t, pkg.Weight().Value())
	assert.Equal(t, 2.0, *pkg.Weight().Value())
	assert.Equal(t, KG, pkg.WeightUnit())
}

func TestPackageUnitIgnoredWithoutRawValue(t *testing.T) {
	preset := PackagePreset{Weight: fptr(2), WeightUnit: KG}
	parcel := shipping.Parcel{WeightUnit: "LB"}

	pkg := NewPackage(parcel, &preset)

	// The parcel declared a unit but no value, so the preset's unit holds.
	assert.Equal(t, KG, pkg.WeightUnit())
	require.NotNil(t, pkg.Weight().KG())
	assert.Equal(t, 2.0, *pkg.Weight().KG())
}

func TestPackageDefaults(t *testing.T) {
	pkg := NewPackage(shipping.Parcel{Weight: fptr(5)}, nil)

	assert.Equal(t, LB, pkg.WeightUnit())
	assert.Equal(t, IN, pkg.DimensionUnit())
	assert.Nil(t, pkg.Width().Value())
}

func TestPackagePackagingType(t *testing.T) {
	preset := PackagePreset{PackagingType: "medium_box"}

	pkg := NewPackage(shipping.Parcel{}, &preset)
	assert.Equal(t, "medium_box", pkg.PackagingType())

	pkg = NewPackage(shipping.Parcel{PackagingType: "envelope"}, &preset)
	assert.Equal(t, "envelope", pkg.PackagingType())
}

func TestNewPackagesAccumulatesViolations(t *testing.T) {
	parcels := []shipping.Parcel{
		{Weight: fptr(1), WeightUnit: "KG"},
		{},
		{Width: fptr(4), DimensionUnit: "CM"},
	}

	_, err := NewPackages(parcels, nil, []string{"weight", "width"})
	require.Error(t, err)

	var fieldErr *shipping.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, map[string]shipping.FieldErrorCode{
		"parcel[0].width":  shipping.FieldErrorRequired,
		"parcel[1].weight": shipping.FieldErrorRequired,
		"parcel[1].width":  shipping.FieldErrorRequired,
		"parcel[2].weight": shipping.FieldErrorRequired,
	}, fieldErr.Violations)
}

func TestNewPackagesUnknownPreset(t *testing.T) {
	parcels := []shipping.Parcel{{Weight: fptr(2), WeightUnit: "KG", PackagePreset: "no_such_box"}}

	// An unmatched preset name resolves to no preset; the parcel's own
	// raw values carry the package.
	pkgs, err := NewPackages(parcels, map[string]PackagePreset{}, []string{"weight"})
	require.NoError(t, err)
	require.Equal(t, 1, pkgs.Len())
	assert.Equal(t, 2.0, *pkgs.All()[0].Weight().KG())
}

func TestNewPackagesUnknownPresetStillValidates(t *testing.T) {
	parcels := []shipping.Parcel{{PackagePreset: "no_such_box"}}

	_, err := NewPackages(parcels, map[string]PackagePreset{}, []string{"weight"})
	require.Error(t, err)

	var fieldErr *shipping.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, shipping.FieldErrorRequired, fieldErr.Violations["parcel[0].weight"])
}

func TestNewPackagesResolvesPresets(t *testing.T) {
	presets := map[string]PackagePreset{
		"small_box": {Width: fptr(10), Height: fptr(8), Length: fptr(12), Weight: fptr(1)},
	}
	parcels := []shipping.Parcel{{PackagePreset: "small_box"}}

	pkgs, err := NewPackages(parcels, presets, []string{"weight", "width", "height", "length"})
	require.NoError(t, err)
	require.Equal(t, 1, pkgs.Len())

	pkg := pkgs.All()[0]
	assert.Equal(t, 1.0, *pkg.Weight().LB())
	assert.Equal(t, 10.0, *pkg.Width().IN())
}

func TestPackagesSingle(t *testing.T) {
	one, err := NewPackages([]shipping.Parcel{{Weight: fptr(1)}}, nil, nil)
	require.NoError(t, err)

	pkg, err := one.Single()
	require.NoError(t, err)
	assert.Equal(t, 1.0, *pkg.Weight().LB())

	two, err := NewPackages([]shipping.Parcel{{Weight: fptr(1)}, {Weight: fptr(2)}}, nil, nil)
	require.NoError(t, err)

	_, err = two.Single()
	assert.ErrorIs(t, err, shipping.ErrMultiParcelNotSupported)

	none, err := NewPackages(nil, nil, nil)
	require.NoError(t, err)

	_, err = none.Single()
	assert.ErrorIs(t, err, shipping.ErrNoParcel)
}

func TestPackagesWeightSum(t *testing.T) {
	pkgs, err := NewPackages([]shipping.Parcel{
		{Weight: fptr(2.5), WeightUnit: "LB"},
		{Weight: fptr(1), WeightUnit: "KG"},
	}, nil, nil)
	require.NoError(t, err)

	total := pkgs.Weight().LB()
	require.NotNil(t, total)
	assert.Equal(t, 4.7, *total)
}

func TestPackagesWeightEmpty(t *testing.T) {
	pkgs, err := NewPackages([]shipping.Parcel{{}}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, pkgs.Weight().LB())
}
