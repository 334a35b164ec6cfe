package model

// Category groups tasks by area of the home or life (kitchen, pets,
// vehicles, etc.). Sort order is a dense 1-based key across all rows.
type Category struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(50);index" json:"name"`
	Color     string `gorm:"type:varchar(7)" json:"color"`
	Icon      string `gorm:"type:varchar(40)" json:"icon,omitempty"`
	IsDefault bool   `gorm:"default:false" json:"isDefault"`
	Order     int    `gorm:"column:sort_order;index" json:"order"`
}

// CategoryForm carries user-supplied category fields. Order and the
// default flag are owned by the service.
type CategoryForm struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// CategoryWithTaskCount pairs a category with its live task counts.
type CategoryWithTaskCount struct {
	Category
	TaskCount        int `json:"taskCount"`
	OverdueTaskCount int `json:"overdueTaskCount"`
}
