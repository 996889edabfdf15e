package analytics

import "github.com/mamadbah2/velocitymart/internal/domain/models"

// DeriveAisle returns the aisle encoded by the leading uppercase letter of a
// slot code. Codes that do not start with A-Z have no aisle.
func DeriveAisle(slot string) (string, bool) {
	if slot == "" {
		return "", false
	}
	c := slot[0]
	if c < 'A' || c > 'Z' {
		return "", false
	}
	return slot[:1], true
}

// skuIndex maps sku_id to its first row in the SKU master.
func skuIndex(skus []models.SKU) map[string]models.SKU {
	index := make(map[string]models.SKU, len(skus))
	for _, sku := range skus {
		if _, ok := index[sku.ID]; !ok {
			index[sku.ID] = sku
		}
	}
	return index
}

// aisleOf resolves the aisle of a SKU through the SKU master.
func aisleOf(index map[string]models.SKU, skuID string) (string, bool) {
	sku, ok := index[skuID]
	if !ok {
		return "", false
	}
	return DeriveAisle(sku.CurrentSlot)
}
