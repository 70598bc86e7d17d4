package models

// Company -> Department -> Position is a strict hierarchy; parents cannot be
// deleted while children reference them.
type Company struct {
	Base
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name" validate:"required"`
}

type Department struct {
	Base
	Name      string `gorm:"size:255;not null" json:"name" validate:"required"`
	CompanyID string `gorm:"type:uuid;not null;index" json:"company_id" validate:"required"`

	Company *Company `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type Position struct {
	Base
	Name         string `gorm:"size:255;not null" json:"name" validate:"required"`
	DepartmentID string `gorm:"type:uuid;not null;index" json:"department_id" validate:"required"`

	Department *Department `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type Category struct {
	Base
	Name  string  `gorm:"size:100;uniqueIndex;not null" json:"name" validate:"required"`
	Color *string `gorm:"size:20" json:"color"`
}
