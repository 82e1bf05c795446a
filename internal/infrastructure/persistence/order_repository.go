package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/domain/trade"
	"github.com/monaco/tienda/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository, trade.OrderTransactor
// and trade.OrphanFinder using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("posicion ASC")
}

// FindByID finds an order, optionally with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID, withItems bool) (*trade.Order, error) {
	query := r.db.WithContext(ctx)
	if withItems {
		query = query.Preload("Items", preloadItems)
	}

	var model models.OrderModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every order newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, withItems bool) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).Order("creado_en DESC")
	if withItems {
		query = query.Preload("Items", preloadItems)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// FindMetricProjections returns the minimal rows used by dashboards
func (r *GormOrderRepository) FindMetricProjections(ctx context.Context) ([]trade.MetricProjection, error) {
	var rows []models.MetricProjectionRow
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("id", "creado_en", "total", "estado").
		Order("creado_en DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]trade.MetricProjection, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}

// Create inserts the order row only
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.OrderModelFromDomain(order)).Error
}

// CreateItems inserts line items for an existing order
func (r *GormOrderRepository) CreateItems(ctx context.Context, items []trade.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := models.OrderItemModelsFromDomain(items)
	return r.db.WithContext(ctx).Create(&rows).Error
}

// CreateWithItems writes the order and its items in one transaction
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.OrderModelFromDomain(order)).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		rows := models.OrderItemModelsFromDomain(order.Items)
		return tx.Create(&rows).Error
	})
}

// UpdateStatus changes the status column
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"estado":         status,
			"actualizado_en": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the order row only
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id).Error
}

// DeleteItems removes every item of an order
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("orden_id = ?", orderID).Delete(&models.OrderItemModel{}).Error
}

// FindOrphanIDs returns orders created before the cutoff that have no items
func (r *GormOrderRepository) FindOrphanIDs(ctx context.Context, createdBefore time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("creado_en < ?", createdBefore).
		Where("NOT EXISTS (?)",
			r.db.Model(&models.OrderItemModel{}).Select("1").Where("orden_items.orden_id = ordenes.id"),
		).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

var (
	_ trade.OrderRepository = (*GormOrderRepository)(nil)
	_ trade.OrderTransactor = (*GormOrderRepository)(nil)
	_ trade.OrphanFinder    = (*GormOrderRepository)(nil)
)
