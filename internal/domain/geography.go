package domain

// Country is the root of the geography hierarchy. Its name is unique.
type Country struct {
	ID         int        `json:"id" gorm:"primaryKey"`
	Nombre     string     `json:"nombre" gorm:"uniqueIndex;not null"`
	IsActive   bool       `json:"isActive"`
	Provincias []Province `json:"provincias,omitempty" gorm:"foreignKey:PaisID"`
}

func (Country) TableName() string { return "paises" }

func (c Country) Active() bool { return c.IsActive }

// Province belongs to a Country and owns localities.
type Province struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	Nombre      string     `json:"nombre" gorm:"uniqueIndex;not null"`
	PaisID      int        `json:"paisId" gorm:"not null"`
	IsActive    bool       `json:"isActive"`
	Pais        *Country   `json:"pais,omitempty" gorm:"foreignKey:PaisID"`
	Localidades []Locality `json:"localidades,omitempty" gorm:"foreignKey:ProvinciaID"`
}

func (Province) TableName() string { return "provincias" }

func (p Province) Active() bool { return p.IsActive }

// Locality belongs to a Province and is referenced by addresses.
type Locality struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Nombre      string    `json:"nombre" gorm:"uniqueIndex;not null"`
	ProvinciaID int       `json:"provinciaId" gorm:"not null"`
	IsActive    bool      `json:"isActive"`
	Provincia   *Province `json:"provincia,omitempty" gorm:"foreignKey:ProvinciaID"`
	Direcciones []Address `json:"direcciones,omitempty" gorm:"foreignKey:LocalidadID"`
}

func (Locality) TableName() string { return "localidades" }

func (l Locality) Active() bool { return l.IsActive }
