package domain

import "time"

// Product is a catalog entry. Variants live in ProductDetail; category
// membership goes through the producto_categorias junction.
type Product struct {
	ID                 int               `json:"id" gorm:"primaryKey"`
	Nombre             string            `json:"nombre" gorm:"not null"`
	Sexo               string            `json:"sexo" gorm:"not null"`
	TipoProducto       string            `json:"tipoProducto" gorm:"not null"`
	IsActive           bool              `json:"isActive"`
	DetalleProductos   []ProductDetail   `json:"detalleProductos,omitempty" gorm:"foreignKey:ProductoID"`
	ProductoCategorias []ProductCategory `json:"productoCategorias,omitempty" gorm:"foreignKey:ProductoID"`
}

func (Product) TableName() string { return "productos" }

func (p Product) Active() bool { return p.IsActive }

// Category forms a tree through CategoriaPadreID.
type Category struct {
	ID               int       `json:"id" gorm:"primaryKey"`
	Nombre           string    `json:"nombre" gorm:"not null"`
	CategoriaPadreID *int      `json:"categoriaPadreId,omitempty"`
	IsActive         bool      `json:"isActive"`
	CategoriaPadre   *Category `json:"categoriaPadre,omitempty" gorm:"foreignKey:CategoriaPadreID"`
}

func (Category) TableName() string { return "categorias" }

func (c Category) Active() bool { return c.IsActive }

// ProductCategory links products and categories.
type ProductCategory struct {
	ProductoID  int       `json:"productoId" gorm:"primaryKey"`
	CategoriaID int       `json:"categoriaId" gorm:"primaryKey"`
	Categoria   *Category `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
}

func (ProductCategory) TableName() string { return "producto_categorias" }

// Price holds purchase and sale amounts. Discounts attach through the
// precio_descuentos junction.
type Price struct {
	ID               int             `json:"id" gorm:"primaryKey"`
	PrecioCompra     float64         `json:"precioCompra" gorm:"not null"`
	PrecioVenta      float64         `json:"precioVenta" gorm:"not null"`
	IsActive         bool            `json:"isActive"`
	DetalleProductos []ProductDetail `json:"detalleProductos,omitempty" gorm:"foreignKey:PrecioID"`
	PrecioDescuentos []PriceDiscount `json:"precioDescuentos,omitempty" gorm:"foreignKey:PrecioID"`
}

func (Price) TableName() string { return "precios" }

func (p Price) Active() bool { return p.IsActive }

// Discount is a percentage valid between two dates.
type Discount struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Porcentaje  float64   `json:"porcentaje" gorm:"not null"`
	FechaInicio time.Time `json:"fechaInicio" gorm:"not null"`
	FechaFinal  time.Time `json:"fechaFinal" gorm:"not null"`
	IsActive    bool      `json:"isActive"`
}

func (Discount) TableName() string { return "descuentos" }

func (d Discount) Active() bool { return d.IsActive }

// PriceDiscount links prices and discounts.
type PriceDiscount struct {
	PrecioID    int       `json:"precioId" gorm:"primaryKey"`
	DescuentoID int       `json:"descuentoId" gorm:"primaryKey"`
	Descuento   *Discount `json:"descuento,omitempty" gorm:"foreignKey:DescuentoID"`
}

func (PriceDiscount) TableName() string { return "precio_descuentos" }

// ProductDetail is a sellable variant of a product: one size/color/brand
// combination with its own stock, price and images.
type ProductDetail struct {
	ID         int              `json:"id" gorm:"primaryKey"`
	Estado     string           `json:"estado" gorm:"not null"`
	Talle      string           `json:"talle" gorm:"not null"`
	Color      string           `json:"color" gorm:"not null"`
	Marca      string           `json:"marca" gorm:"not null"`
	Stock      int              `json:"stock" gorm:"not null"`
	ProductoID int              `json:"productoId" gorm:"not null"`
	PrecioID   int              `json:"precioId" gorm:"not null"`
	IsActive   bool             `json:"isActive"`
	Producto   *Product         `json:"producto,omitempty" gorm:"foreignKey:ProductoID"`
	Precio     *Price           `json:"precio,omitempty" gorm:"foreignKey:PrecioID"`
	Imagenes   []Image          `json:"imagenes,omitempty" gorm:"foreignKey:DetalleProductoID"`
	Ordenes    []BuyOrderDetail `json:"ordenes,omitempty" gorm:"foreignKey:DetalleProductoID"`
}

func (ProductDetail) TableName() string { return "detalle_productos" }

func (p ProductDetail) Active() bool { return p.IsActive }

// Image is a picture of a product variant.
type Image struct {
	ID                int    `json:"id" gorm:"primaryKey"`
	URL               string `json:"url" gorm:"column:url;not null"`
	DetalleProductoID int    `json:"detalleProductoId" gorm:"not null"`
	IsActive          bool   `json:"isActive"`
}

func (Image) TableName() string { return "imagenes" }

func (i Image) Active() bool { return i.IsActive }
