package domain

import "time"

// BuyOrder is a purchase shipped to an address.
type BuyOrder struct {
	ID            int              `json:"id" gorm:"primaryKey"`
	Total         float64          `json:"total" gorm:"not null"`
	FechaDeCompra time.Time        `json:"fechaDeCompra" gorm:"not null"`
	DireccionID   int              `json:"direccionId" gorm:"not null"`
	IsActive      bool             `json:"isActive"`
	Direccion     *Address         `json:"direccion,omitempty" gorm:"foreignKey:DireccionID"`
	Detalles      []BuyOrderDetail `json:"detalles,omitempty" gorm:"foreignKey:OrdenCompraID"`
}

func (BuyOrder) TableName() string { return "ordenes_compra" }

func (b BuyOrder) Active() bool { return b.IsActive }

// BuyOrderDetail is one line of a purchase order.
type BuyOrderDetail struct {
	ID                int            `json:"id" gorm:"primaryKey"`
	Cantidad          int            `json:"cantidad" gorm:"not null"`
	Subtotal          float64        `json:"subtotal" gorm:"not null"`
	OrdenCompraID     int            `json:"ordenCompraId" gorm:"not null"`
	DetalleProductoID int            `json:"detalleProductoId" gorm:"not null"`
	IsActive          bool           `json:"isActive"`
	OrdenCompra       *BuyOrder      `json:"ordenCompra,omitempty" gorm:"foreignKey:OrdenCompraID"`
	DetalleProducto   *ProductDetail `json:"detalleProducto,omitempty" gorm:"foreignKey:DetalleProductoID"`
}

func (BuyOrderDetail) TableName() string { return "detalle_ordenes" }

func (b BuyOrderDetail) Active() bool { return b.IsActive }
