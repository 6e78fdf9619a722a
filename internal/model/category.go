package model

// Category is a catalog grouping. Products reference it by name, not by
// foreign key, so deletion is guarded by an application-level scan.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

func (Category) TableName() string {
	return "categories"
}
