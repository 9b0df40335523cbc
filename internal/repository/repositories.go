package repository

import (
	"context"

	"tienda-api/internal/domain"

	"gorm.io/gorm"
)

// Each constructor fixes the eager include shape its resource serves on
// list/get. Shapes without preloads return the bare record.

func NewCountryRepository(db *gorm.DB) Store[domain.Country] {
	return newGormStore[domain.Country](db)
}

func NewProvinceRepository(db *gorm.DB) Store[domain.Province] {
	return newGormStore[domain.Province](db,
		"Pais",
		"Localidades.Direcciones",
	)
}

func NewLocalityRepository(db *gorm.DB) Store[domain.Locality] {
	return newGormStore[domain.Locality](db, "Provincia")
}

func NewAddressRepository(db *gorm.DB) Store[domain.Address] {
	return newGormStore[domain.Address](db,
		"Localidad.Provincia.Pais",
		"Ordenes.Detalles.DetalleProducto.Producto",
		"Ordenes.Detalles.DetalleProducto.Precio",
		"Ordenes.Detalles.DetalleProducto.Imagenes",
	)
}

// UserRepository extends the generic store with the email lookup the auth
// flow needs. It does not filter on is_active; login decides what to do
// with a deactivated account.
type UserRepository interface {
	Store[domain.User]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	*gormStore[domain.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{newGormStore[domain.User](db)}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.WithContext(ctx).Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func NewProductRepository(db *gorm.DB) Store[domain.Product] {
	return newGormStore[domain.Product](db,
		"DetalleProductos.Precio",
		"DetalleProductos.Imagenes",
		"DetalleProductos.Ordenes.OrdenCompra",
		"ProductoCategorias.Categoria",
	)
}

func NewCategoryRepository(db *gorm.DB) Store[domain.Category] {
	return newGormStore[domain.Category](db)
}

func NewPriceRepository(db *gorm.DB) Store[domain.Price] {
	return newGormStore[domain.Price](db,
		"DetalleProductos.Producto",
		"DetalleProductos.Imagenes",
		"PrecioDescuentos.Descuento",
	)
}

func NewDiscountRepository(db *gorm.DB) Store[domain.Discount] {
	return newGormStore[domain.Discount](db)
}

func NewProductDetailRepository(db *gorm.DB) Store[domain.ProductDetail] {
	return newGormStore[domain.ProductDetail](db)
}

func NewImageRepository(db *gorm.DB) Store[domain.Image] {
	return newGormStore[domain.Image](db)
}

func NewBuyOrderRepository(db *gorm.DB) Store[domain.BuyOrder] {
	return newGormStore[domain.BuyOrder](db)
}

func NewBuyOrderDetailRepository(db *gorm.DB) Store[domain.BuyOrderDetail] {
	return newGormStore[domain.BuyOrderDetail](db)
}
