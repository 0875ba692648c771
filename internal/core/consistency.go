package core

import "storefront-catalog/internal/types"

// CheckConsistency compares the family expected for id with the family of
// the product's first image. An image tree nobody recognizes is never a
// mismatch.
func CheckConsistency(id string, product types.Product) types.ConsistencyReport {
	expected := InferFamily(id, product)
	observed := types.FamilyUnknown
	if len(product.Images) > 0 {
		observed = ImageFamily(product.Images[0])
	}
	return types.ConsistencyReport{
		OK:             observed == types.FamilyUnknown || observed == expected,
		ExpectedFamily: expected,
		ImageFamily:    observed,
	}
}
