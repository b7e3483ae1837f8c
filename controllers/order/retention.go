package orderControllers

import (
	"log"

	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

// RetentionLimit caps how many orders are kept per user.
const RetentionLimit = 50

// PruneOrders deletes all of a user's orders except the `keep` most recent,
// ordered by creation time then id descending. Items go with their headers in
// the same transaction. Callers treat failure as non-fatal.
func PruneOrders(db *gorm.DB, userID uint, keep int) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var staleIDs []uint
		if err := tx.Model(&models.Order{}).
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			Offset(keep).Limit(-1).
			Pluck("id", &staleIDs).Error; err != nil {
			return err
		}
		if len(staleIDs) == 0 {
			return nil
		}
		if err := tx.Where("order_id IN ?", staleIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", staleIDs).Delete(&models.Order{}).Error
	})
	if err != nil {
		log.Printf("order retention cleanup failed for user %d: %v", userID, err)
	}
	return err
}
