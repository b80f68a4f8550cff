package controllers_test

import (
	"context"

	"storefront-service/models"
)

// --- Mock SessionService ---

type mockSessionService struct {
	currentFn  func(ctx context.Context, clientID string) (*models.User, error)
	loginFn    func(ctx context.Context, clientID, email, password string) (*models.User, error)
	registerFn func(ctx context.Context, clientID, name, email, password string) (*models.User, error)
	logoutFn   func(ctx context.Context, clientID string) error
	updateFn   func(ctx context.Context, clientID string, updates models.UpdateUserRequest) (*models.User, error)
	isAdminFn  func(ctx context.Context, clientID string) (bool, error)
}

func (m *mockSessionService) Current(ctx context.Context, clientID string) (*models.User, error) {
	if m.currentFn == nil {
		return nil, nil
	}
	return m.currentFn(ctx, clientID)
}
func (m *mockSessionService) Login(ctx context.Context, clientID, email, password string) (*models.User, error) {
	return m.loginFn(ctx, clientID, email, password)
}
func (m *mockSessionService) Register(ctx context.Context, clientID, name, email, password string) (*models.User, error) {
	return m.registerFn(ctx, clientID, name, email, password)
}
func (m *mockSessionService) Logout(ctx context.Context, clientID string) error {
	return m.logoutFn(ctx, clientID)
}
func (m *mockSessionService) UpdateUser(ctx context.Context, clientID string, updates models.UpdateUserRequest) (*models.User, error) {
	return m.updateFn(ctx, clientID, updates)
}
func (m *mockSessionService) IsAdmin(ctx context.Context, clientID string) (bool, error) {
	return m.isAdminFn(ctx, clientID)
}

// --- Mock CartService ---

type mockCartService struct {
	getFn      func(ctx context.Context, clientID string) (*models.Cart, error)
	addFn      func(ctx context.Context, clientID string, item models.CartItem) (*models.Cart, error)
	updateFn   func(ctx context.Context, clientID, productID string, quantity int) (*models.Cart, error)
	removeFn   func(ctx context.Context, clientID, productID string) (*models.Cart, error)
	clearFn    func(ctx context.Context, clientID string) error
	summaryFn  func(ctx context.Context, clientID string) (*models.CartSummary, error)
	checkoutFn func(ctx context.Context, clientID, userID string) (*models.CheckoutEvent, error)
}

func (m *mockCartService) GetCart(ctx context.Context, clientID string) (*models.Cart, error) {
	return m.getFn(ctx, clientID)
}
func (m *mockCartService) AddToCart(ctx context.Context, clientID string, item models.CartItem) (*models.Cart, error) {
	return m.addFn(ctx, clientID, item)
}
func (m *mockCartService) UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (*models.Cart, error) {
	return m.updateFn(ctx, clientID, productID, quantity)
}
func (m *mockCartService) RemoveFromCart(ctx context.Context, clientID, productID string) (*models.Cart, error) {
	return m.removeFn(ctx, clientID, productID)
}
func (m *mockCartService) ClearCart(ctx context.Context, clientID string) error {
	return m.clearFn(ctx, clientID)
}
func (m *mockCartService) Summary(ctx context.Context, clientID string) (*models.CartSummary, error) {
	return m.summaryFn(ctx, clientID)
}
func (m *mockCartService) Checkout(ctx context.Context, clientID, userID string) (*models.CheckoutEvent, error) {
	return m.checkoutFn(ctx, clientID, userID)
}

// --- Mock CatalogService ---

type mockCatalogService struct {
	listFn       func(ctx context.Context, query models.ProductQuery) ([]models.Product, int, error)
	getFn        func(ctx context.Context, id string) (*models.Product, error)
	categoriesFn func(ctx context.Context) ([]string, error)
	createFn     func(ctx context.Context, product models.Product) (*models.Product, error)
	updateFn     func(ctx context.Context, id string, product models.Product) (*models.Product, error)
	deleteFn     func(ctx context.Context, id string) error
	presignFn    func(ctx context.Context, filename, contentType string) (*models.PresignResponse, error)
}

func (m *mockCatalogService) List(ctx context.Context, query models.ProductQuery) ([]models.Product, int, error) {
	return m.listFn(ctx, query)
}
func (m *mockCatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return m.getFn(ctx, id)
}
func (m *mockCatalogService) Categories(ctx context.Context) ([]string, error) {
	return m.categoriesFn(ctx)
}
func (m *mockCatalogService) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	return m.createFn(ctx, product)
}
func (m *mockCatalogService) Update(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	return m.updateFn(ctx, id, product)
}
func (m *mockCatalogService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockCatalogService) PresignImageUpload(ctx context.Context, filename, contentType string) (*models.PresignResponse, error) {
	return m.presignFn(ctx, filename, contentType)
}
