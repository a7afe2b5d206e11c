package repositories

import (
	"context"

	"storefront/models"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, search string, page, limit int) ([]models.User, int, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id int64, role string) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepositoryInterface interface {
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	CountChildren(ctx context.Context, id int64) (int, error)
	CountProducts(ctx context.Context, id int64) (int, error)
}

type AttributeRepositoryInterface interface {
	List(ctx context.Context) ([]models.Attribute, error)
	FindByID(ctx context.Context, id int64) (*models.Attribute, error)
	Create(ctx context.Context, attr *models.Attribute) error
	Update(ctx context.Context, attr *models.Attribute) error
	Delete(ctx context.Context, id int64) error
	IsInUse(ctx context.Context, id int64) (bool, error)
	CreateValue(ctx context.Context, value *models.AttributeValue) error
	UpdateValue(ctx context.Context, value *models.AttributeValue) error
	DeleteValue(ctx context.Context, attributeID, valueID int64) error
}

type ProductTypeRepositoryInterface interface {
	List(ctx context.Context) ([]models.ProductType, error)
	FindByID(ctx context.Context, id int64) (*models.ProductType, error)
	Create(ctx context.Context, pt *models.ProductType, productAttrIDs, variantAttrIDs []int64) error
	Update(ctx context.Context, pt *models.ProductType, productAttrIDs, variantAttrIDs []int64) error
	Delete(ctx context.Context, id int64) error
	IsInUse(ctx context.Context, id int64) (bool, error)
}

type ProductRepositoryInterface interface {
	Search(ctx context.Context, filter models.ProductFilter) ([]models.ProductListItem, int, error)
	Facets(ctx context.Context, filter models.ProductFilter) (*models.Facets, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	AdminList(ctx context.Context, search string, page, limit int) ([]models.Product, int, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	SetAttributeValues(ctx context.Context, productID int64, valueIDs []int64) error
	UpdateImage(ctx context.Context, id int64, url, publicID string) error
}

type VariantRepositoryInterface interface {
	ListByProduct(ctx context.Context, productID int64) ([]models.Variant, error)
	FindByID(ctx context.Context, id int64) (*models.Variant, error)
	CreateMany(ctx context.Context, variants []models.Variant) error
	Update(ctx context.Context, variant *models.Variant) error
	Delete(ctx context.Context, id int64) error
	BulkUpdate(ctx context.Context, updates []models.VariantStockPrice) error
}

type CollectionRepositoryInterface interface {
	List(ctx context.Context, publishedOnly bool) ([]models.Collection, error)
	FindByID(ctx context.Context, id int64) (*models.Collection, error)
	FindBySlug(ctx context.Context, slug string) (*models.Collection, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id int64) error
	AddProducts(ctx context.Context, id int64, productIDs []int64) error
	RemoveProduct(ctx context.Context, id, productID int64) error
}

type CartRepositoryInterface interface {
	FindActiveByUser(ctx context.Context, userID int64) (*models.Cart, error)
	FindActiveBySession(ctx context.Context, token string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Items(ctx context.Context, cartID string) ([]models.CartItem, error)
	SetItemQuantity(ctx context.Context, cartID string, variantID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID string, itemID int64) error
	Clear(ctx context.Context, cartID string) error
	AssignUser(ctx context.Context, cartID string, userID int64) error
	Discard(ctx context.Context, cartID string) error
}

type OrderRepositoryInterface interface {
	Place(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Order, int, error)
	List(ctx context.Context, status, search string, page, limit int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id int64, from, to string) error
	Stats(ctx context.Context, lowStockThreshold int) (*models.DashboardStats, error)
}
