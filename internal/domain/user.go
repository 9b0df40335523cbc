package domain

// Rol distinguishes regular clients from administrators.
type Rol string

const (
	RolCliente Rol = "CLIENTE"
	RolAdmin   Rol = "ADMIN"
)

// User is an account holder. The password column stores a bcrypt hash and
// is never serialized.
type User struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Username    string    `json:"username" gorm:"not null"`
	Nombre      string    `json:"nombre" gorm:"not null"`
	Apellido    string    `json:"apellido" gorm:"not null"`
	DNI         string    `json:"dni" gorm:"column:dni;not null"`
	Rol         Rol       `json:"rol" gorm:"type:varchar(20);not null"`
	IsActive    bool      `json:"isActive"`
	Direcciones []Address `json:"direcciones,omitempty" gorm:"many2many:usuario_direcciones;joinForeignKey:UsuarioID;joinReferences:DireccionID"`
}

func (User) TableName() string { return "usuarios" }

func (u User) Active() bool { return u.IsActive }

// Address belongs to a Locality and is shared with users through the
// usuario_direcciones junction.
type Address struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	Calle        string     `json:"calle" gorm:"not null"`
	Numero       int        `json:"numero" gorm:"not null"`
	DeptoNro     string     `json:"deptoNro" gorm:"not null"`
	CodigoPostal string     `json:"codigoPostal" gorm:"not null"`
	LocalidadID  int        `json:"localidadId" gorm:"not null"`
	IsActive     bool       `json:"isActive"`
	Localidad    *Locality  `json:"localidad,omitempty" gorm:"foreignKey:LocalidadID"`
	Ordenes      []BuyOrder `json:"ordenes,omitempty" gorm:"foreignKey:DireccionID"`
}

func (Address) TableName() string { return "direcciones" }

func (a Address) Active() bool { return a.IsActive }
