package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// CartService defines the cart operations of a client.
type CartService interface {
	GetCart(ctx context.Context, clientID string) (*models.Cart, error)
	AddToCart(ctx context.Context, clientID string, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, clientID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, clientID string) error
	Summary(ctx context.Context, clientID string) (*models.CartSummary, error)
	Checkout(ctx context.Context, clientID, userID string) (*models.CheckoutEvent, error)
}

// CartConfig holds checkout settings.
type CartConfig struct {
	// ShippingCost is the flat shipping charge added to a non-empty cart.
	ShippingCost        float64
	CheckoutSNSTopicARN string
}

type cartServiceImpl struct {
	repo      repository.CartRepository
	cfg       CartConfig
	publisher aws_pkg.SNSPublisher
	metrics   aws_pkg.MetricsRecorder
	logger    *zap.Logger
	locks     *keyedMutex
}

// NewCartService creates a new CartService. publisher and metrics may be nil.
func NewCartService(
	repo repository.CartRepository,
	cfg CartConfig,
	publisher aws_pkg.SNSPublisher,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		repo:      repo,
		cfg:       cfg,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		locks:     newKeyedMutex(),
	}
}

// GetCart returns the client's cart, empty when none is stored.
func (s *cartServiceImpl) GetCart(ctx context.Context, clientID string) (*models.Cart, error) {
	return s.load(ctx, clientID)
}

// AddToCart increments the line for item.ID or appends it with quantity one.
func (s *cartServiceImpl) AddToCart(ctx context.Context, clientID string, item models.CartItem) (*models.Cart, error) {
	if item.ID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	return s.mutate(ctx, clientID, func(cart *models.Cart) {
		cart.Add(item)
	})
}

// UpdateQuantity sets a line's quantity, removing it when quantity <= 0.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (*models.Cart, error) {
	return s.mutate(ctx, clientID, func(cart *models.Cart) {
		cart.SetQuantity(productID, quantity)
	})
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, clientID, productID string) (*models.Cart, error) {
	return s.mutate(ctx, clientID, func(cart *models.Cart) {
		cart.Remove(productID)
	})
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, clientID string) error {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	if err := s.repo.DeleteCart(ctx, clientID); err != nil {
		return s.storageError("delete cart", clientID, err)
	}
	return nil
}

// Summary derives the checkout totals of the client's cart.
func (s *cartServiceImpl) Summary(ctx context.Context, clientID string) (*models.CartSummary, error) {
	cart, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

// Checkout publishes the cart as a checkout.requested event and clears it.
// The cart is kept when publishing fails.
func (s *cartServiceImpl) Checkout(ctx context.Context, clientID, userID string) (*models.CheckoutEvent, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	cart, err := s.loadLocked(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	summary := s.summarize(cart)
	event := &models.CheckoutEvent{
		Event:     models.CheckoutRequestedEvent,
		ClientID:  clientID,
		UserID:    userID,
		Items:     cart.Items,
		Subtotal:  summary.Subtotal,
		Shipping:  summary.Shipping,
		Total:     summary.Total,
		Timestamp: time.Now(),
	}

	if err := s.publishCheckoutEvent(ctx, event); err != nil {
		return nil, apperrors.ErrCheckoutFailed.Wrap(err)
	}

	cart.Clear()
	if err := s.persistLocked(ctx, cart); err != nil {
		s.logger.Error("Failed to clear cart after checkout", zap.String("client_id", clientID), zap.Error(err))
	}

	if s.metrics != nil && s.metrics.IsEnabled() {
		if err := s.metrics.RecordCount(ctx, aws_pkg.MetricCartCheckouts, map[string]string{"Service": "storefront"}); err != nil {
			s.logger.Warn("Failed to record checkout metric", zap.Error(err))
		}
	}

	s.logger.Info("Checkout initiated",
		zap.String("client_id", clientID),
		zap.Int("items", summary.TotalItems),
		zap.Float64("total", summary.Total),
	)
	return event, nil
}

func (s *cartServiceImpl) summarize(cart *models.Cart) *models.CartSummary {
	summary := &models.CartSummary{
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal(),
	}
	if len(cart.Items) > 0 {
		summary.Shipping = s.cfg.ShippingCost
	}
	summary.Total = summary.Subtotal + summary.Shipping
	return summary
}

func (s *cartServiceImpl) publishCheckoutEvent(ctx context.Context, event *models.CheckoutEvent) error {
	if s.publisher == nil || s.cfg.CheckoutSNSTopicARN == "" {
		s.logger.Warn("SNS client not configured, skipping checkout event")
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, s.cfg.CheckoutSNSTopicARN, payload); err != nil {
		s.logger.Error("Failed to publish checkout event", zap.String("client_id", event.ClientID), zap.Error(err))
		return err
	}
	return nil
}

func (s *cartServiceImpl) mutate(ctx context.Context, clientID string, fn func(cart *models.Cart)) (*models.Cart, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	cart, err := s.loadLocked(ctx, clientID)
	if err != nil {
		return nil, err
	}

	fn(cart)

	if err := s.persistLocked(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// persistLocked saves cart, deleting the stored key once it is empty.
func (s *cartServiceImpl) persistLocked(ctx context.Context, cart *models.Cart) error {
	if len(cart.Items) == 0 {
		if err := s.repo.DeleteCart(ctx, cart.ClientID); err != nil {
			return s.storageError("delete cart", cart.ClientID, err)
		}
		return nil
	}
	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return s.storageError("save cart", cart.ClientID, err)
	}
	return nil
}

func (s *cartServiceImpl) load(ctx context.Context, clientID string) (*models.Cart, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()
	return s.loadLocked(ctx, clientID)
}

func (s *cartServiceImpl) loadLocked(ctx context.Context, clientID string) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, clientID)
	if err != nil {
		return nil, s.storageError("load cart", clientID, err)
	}
	if cart == nil {
		cart = models.NewCart(clientID)
	}
	return cart, nil
}

func (s *cartServiceImpl) storageError(op, clientID string, err error) error {
	s.logger.Error("Cart storage failure", zap.String("op", op), zap.String("client_id", clientID), zap.Error(err))
	if errors.Is(err, repository.ErrCorrupt) {
		return apperrors.ErrStorageCorrupt.Wrap(err)
	}
	return apperrors.ErrStorageUnavailable.Wrap(err)
}
