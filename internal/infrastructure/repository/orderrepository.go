package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bilig/internal/domain/order"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/infrastructure/persistence/models"
	"bilig/internal/shared/logger"
)

// OrderRepositoryImpl implements the order.Repository interface
type OrderRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB, logger logger.Interface) order.Repository {
	return &OrderRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *order.Order) error {
	model, err := orderToModel(o)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order", "order_no", o.OrderNo(), "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	o.SetID(model.ID)
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, o *order.Order) error {
	model, err := orderToModel(o)
	if err != nil {
		return err
	}
	model.ID = o.ID()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update order", "order_no", o.OrderNo(), "error", err)
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID uint) (*order.Order, error) {
	return r.getOne(ctx, "id = ?", orderID)
}

func (r *OrderRepositoryImpl) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return r.getOne(ctx, "order_no = ?", orderNo)
}

func (r *OrderRepositoryImpl) GetByInvoiceID(ctx context.Context, invoiceID string) (*order.Order, error) {
	return r.getOne(ctx, "invoice_id = ?", invoiceID)
}

func (r *OrderRepositoryImpl) GetPendingByUserAndCourse(ctx context.Context, userID, courseID uint) (*order.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, order.StatusPending.String()).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending order: %w", err)
	}
	return orderFromModel(&model)
}

func (r *OrderRepositoryImpl) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*order.Order, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), offset, limit)
}

func (r *OrderRepositoryImpl) List(ctx context.Context, status order.Status, offset, limit int) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if status != "" {
		query = query.Where("status = ?", status.String())
	}
	return r.list(ctx, query, offset, limit)
}

func (r *OrderRepositoryImpl) getOne(ctx context.Context, cond string, arg any) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return orderFromModel(&model)
}

func (r *OrderRepositoryImpl) list(ctx context.Context, query *gorm.DB, offset, limit int) ([]*order.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var rows []models.OrderModel
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(rows))
	for i := range rows {
		o, err := orderFromModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, nil
}

func orderToModel(o *order.Order) (*models.OrderModel, error) {
	var callbackLog datatypes.JSON
	if log := o.CallbackLog(); len(log) > 0 {
		data, err := json.Marshal(log)
		if err != nil {
			return nil, fmt.Errorf("failed to encode callback log: %w", err)
		}
		callbackLog = data
	}

	var lastVerification datatypes.JSON
	if lv := o.LastVerification(); lv != nil {
		lastVerification = datatypes.JSON(*lv)
	}

	return &models.OrderModel{
		OrderNo:          o.OrderNo(),
		UserID:           o.UserID(),
		CourseID:         o.CourseID(),
		Amount:           o.Amount().Amount(),
		Currency:         o.Amount().Currency(),
		PaymentMethod:    o.PaymentMethod().String(),
		Status:           o.Status().String(),
		InvoiceID:        o.InvoiceID(),
		TransactionID:    o.TransactionID(),
		CallbackLog:      callbackLog,
		LastVerification: lastVerification,
		PaidAt:           o.PaidAt(),
		Version:          o.Version(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}, nil
}

func orderFromModel(m *models.OrderModel) (*order.Order, error) {
	var callbackLog []string
	if len(m.CallbackLog) > 0 {
		if err := json.Unmarshal(m.CallbackLog, &callbackLog); err != nil {
			return nil, fmt.Errorf("corrupt callback log on order %d: %w", m.ID, err)
		}
	}

	var lastVerification *string
	if len(m.LastVerification) > 0 {
		s := string(m.LastVerification)
		lastVerification = &s
	}

	return order.ReconstructOrder(order.OrderReconstructParams{
		ID:               m.ID,
		OrderNo:          m.OrderNo,
		UserID:           m.UserID,
		CourseID:         m.CourseID,
		Amount:           vo.NewMoney(m.Amount, m.Currency),
		PaymentMethod:    order.PaymentMethod(m.PaymentMethod),
		Status:           order.Status(m.Status),
		InvoiceID:        m.InvoiceID,
		TransactionID:    m.TransactionID,
		CallbackLog:      callbackLog,
		LastVerification: lastVerification,
		PaidAt:           m.PaidAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Version:          m.Version,
	}), nil
}
