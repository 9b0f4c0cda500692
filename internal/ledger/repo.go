package ledger

import (
	"context"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the gorm-backed Store.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the ledger store to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Append(ctx context.Context, purchase *models.Purchase) (bool, error) {
	granted := false
	err := db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		grant := models.Entitlement{
			LearnerID:  purchase.LearnerID,
			CourseID:   purchase.CourseID,
			PurchaseID: purchase.ID,
			GrantedAt:  purchase.PurchasedAt,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant)
		if res.Error != nil {
			return res.Error
		}
		granted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *Repository) ListByLearner(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	var rows []models.Purchase
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("purchased_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Purchase, error) {
	var rows []models.Purchase
	if err := r.db.WithContext(ctx).Order("purchased_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) MarkRefunded(ctx context.Context, id string, at time.Time) (bool, error) {
	revoked := false
	err := db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, "id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", id, enums.PaymentStatusCompleted).
			Updates(map[string]any{
				"status":      enums.PaymentStatusRefunded,
				"can_refund":  false,
				"refunded_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotRefundable
		}

		var remaining int64
		err := tx.Model(&models.Purchase{}).
			Where("learner_id = ? AND course_id = ? AND status = ?", purchase.LearnerID, purchase.CourseID, enums.PaymentStatusCompleted).
			Count(&remaining).Error
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		del := tx.Where("learner_id = ? AND course_id = ?", purchase.LearnerID, purchase.CourseID).Delete(&models.Entitlement{})
		if del.Error != nil {
			return del.Error
		}
		revoked = del.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return revoked, nil
}

func (r *Repository) Entitlements(ctx context.Context, learnerID string) ([]models.Entitlement, error) {
	var rows []models.Entitlement
	if err := r.db.WithContext(ctx).Where("learner_id = ?", learnerID).Order("course_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) HasEntitlement(ctx context.Context, learnerID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Entitlement{}).
		Where("learner_id = ? AND course_id = ?", learnerID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
