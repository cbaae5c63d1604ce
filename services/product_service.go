package services

import (
	"errors"

	"github.com/faouziesf/cod-manager/models"

	"gorm.io/gorm"
)

type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

type ProductInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,min=0"`
	Stock    *int    `json:"stock"`
	IsActive *bool   `json:"is_active"`
}

func (s *ProductService) CreateProduct(in ProductInput, actor *models.User) (*models.Product, error) {
	product := &models.Product{
		AdminID:  actor.TenantID(),
		Name:     in.Name,
		Price:    in.Price,
		IsActive: true,
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := s.DB.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(id uint, in ProductInput, actor *models.User) (*models.Product, error) {
	product, err := s.GetProduct(id, actor)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Price = in.Price
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(id uint, actor *models.User) (*models.Product, error) {
	var product models.Product
	err := s.DB.Where("admin_id = ?", actor.TenantID()).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) DeleteProduct(id uint, actor *models.User) error {
	product, err := s.GetProduct(id, actor)
	if err != nil {
		return err
	}
	return s.DB.Delete(product).Error
}

func (s *ProductService) ProductsForUser(user *models.User) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("admin_id = ?", user.TenantID()).
		Order("name").Find(&products).Error
	return products, err
}

func (s *ProductService) ActiveProductsForUser(user *models.User) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("admin_id = ? AND is_active = ?", user.TenantID(), true).
		Order("name").Find(&products).Error
	return products, err
}

func (s *ProductService) LowStockProducts(admin *models.User, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("admin_id = ? AND is_active = ? AND stock <= ?", admin.TenantID(), true, threshold).
		Order("stock").Find(&products).Error
	return products, err
}

func (s *ProductService) OutOfStockProducts(admin *models.User) ([]models.Product, error) {
	return s.LowStockProducts(admin, 0)
}

// OrdersWithOutOfStockProducts lists unresolved orders holding at least
// one line item whose product ran out, so confirmation can be held back.
func (s *ProductService) OrdersWithOutOfStockProducts(admin *models.User) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Distinct("orders.*").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.admin_id = ?", admin.TenantID()).
		Where("orders.status IN ?", []models.OrderStatus{models.StatusStandard, models.StatusDated}).
		Where("products.stock <= ? AND products.is_active = ?", 0, true).
		Find(&orders).Error
	return orders, err
}
