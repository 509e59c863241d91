package models

// User represents a registered diner. Its ID is the same identifier carried
// in the session cookie.
type User struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name string `json:"name" gorm:"type:text;not null" validate:"required,min=1,max=100"`
}

// TableName pins the table name used by the migrations.
func (User) TableName() string {
	return "users"
}
