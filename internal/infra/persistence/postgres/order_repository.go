package postgres

import (
	"context"

	"darkstore/internal/domain/entity"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/repository"
	"darkstore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// List returns all orders, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindBySessionRef retrieves the order recorded for a payment session.
func (repo *orderRepository) FindBySessionRef(ctx context.Context, sessionRef string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("external_session_ref = ?", sessionRef).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by session ref")
	}

	return toOrderDomain(&orderM), nil
}

// Create persists a new order. The unique index on external_session_ref turns
// a concurrent webhook replay into ErrSessionAlreadyRecorded.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrSessionAlreadyRecorded
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrEventProcessingFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// UpdateStatus persists payment status and fulfillment changes.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, fulfillment entity.FulfillmentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      string(status),
			"fulfillment": string(fulfillment),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:                 data.ID,
		ExternalSessionRef: data.ExternalSessionRef,
		ExternalPaymentRef: data.ExternalPaymentRef,
		CustomerEmail:      data.CustomerEmail,
		CustomerName:       data.CustomerName,
		CustomerPhone:      data.CustomerPhone,
		ShippingAddress:    data.ShippingAddress.Data(),
		BillingAddress:     data.BillingAddress.Data(),
		Items:              data.Items.Data(),
		Total:              data.Total,
		Currency:           data.Currency,
		Status:             entity.OrderStatus(data.Status),
		Fulfillment:        entity.FulfillmentStatus(data.Fulfillment),
		PaymentStatus:      data.PaymentStatus,
		Metadata:           data.Metadata.Data(),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:                 data.ID,
		ExternalSessionRef: data.ExternalSessionRef,
		ExternalPaymentRef: data.ExternalPaymentRef,
		CustomerEmail:      data.CustomerEmail,
		CustomerName:       data.CustomerName,
		CustomerPhone:      data.CustomerPhone,
		ShippingAddress:    datatypes.NewJSONType(data.ShippingAddress),
		BillingAddress:     datatypes.NewJSONType(data.BillingAddress),
		Items:              datatypes.NewJSONType(data.Items),
		Total:              data.Total,
		Currency:           data.Currency,
		Status:             string(data.Status),
		Fulfillment:        string(data.Fulfillment),
		PaymentStatus:      data.PaymentStatus,
		Metadata:           datatypes.NewJSONType(data.Metadata),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
