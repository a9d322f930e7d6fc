package services

import (
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
)

// decrementStock reserves n units from a size bucket with a single conditional
// UPDATE: the WHERE clause re-checks availability so two concurrent checkouts
// can never both take the last units. Returns false when the bucket has fewer
// than n units.
func decrementStock(tx *gorm.DB, productID uint, size string, n int) (bool, error) {
	col, err := models.SizeColumn(size)
	if err != nil {
		return false, err
	}
	res := tx.Model(&models.Quantity{}).
		Where("product_id = ? AND "+col+" >= ?", productID, n).
		UpdateColumn(col, gorm.Expr(col+" - ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// incrementStock puts n units back into a size bucket (failed payment,
// approved return).
func incrementStock(tx *gorm.DB, productID uint, size string, n int) error {
	col, err := models.SizeColumn(size)
	if err != nil {
		return err
	}
	res := tx.Model(&models.Quantity{}).
		Where("product_id = ?", productID).
		UpdateColumn(col, gorm.Expr(col+" + ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
