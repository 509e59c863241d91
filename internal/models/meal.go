package models

// Diet tells whether a meal was within the diet plan.
type Diet string

const (
	DietIn  Diet = "in"
	DietOut Diet = "out"
)

// Valid reports whether d is one of the known diet values.
func (d Diet) Valid() bool {
	return d == DietIn || d == DietOut
}

// Meal represents a single meal record owned by one user.
type Meal struct {
	// Seq records insertion order. It is internal to the store.
	Seq         uint64 `json:"-" gorm:"column:seq;primaryKey;autoIncrement"`
	UserID      string `json:"userId" gorm:"column:userId;type:varchar(36);index"`
	MealID      string `json:"mealId" gorm:"column:mealId;type:varchar(36);uniqueIndex"`
	Description string `json:"description" gorm:"column:description;type:text;not null"`
	DateAndHour string `json:"dateAndHour" gorm:"column:dateAndHour;type:text;not null"`
	InOrOutDiet Diet   `json:"inOrOutDiet" gorm:"column:inOrOutDiet;type:text;not null"`
	// EatenAt is DateAndHour as a sortable UTC instant. See EatenAtKey.
	EatenAt     string `json:"-" gorm:"column:eatenAt;type:varchar(30);index"`
}

// SetEatenAt derives EatenAt from DateAndHour.
func (m *Meal) SetEatenAt() {
	m.EatenAt = EatenAtKey(m.DateAndHour)
}

// TableName pins the table name used by the migrations.
func (Meal) TableName() string {
	return "meals"
}

// MealPatch carries the fields of a partial update. A nil field is left
// untouched.
type MealPatch struct {
	Description *string
	DateAndHour *string
	InOrOutDiet *Diet
}

// Columns returns the column/value pairs for the fields that are set.
func (p MealPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.DateAndHour != nil {
		cols["dateAndHour"] = *p.DateAndHour
		cols["eatenAt"] = EatenAtKey(*p.DateAndHour)
	}
	if p.InOrOutDiet != nil {
		cols["inOrOutDiet"] = string(*p.InOrOutDiet)
	}
	return cols
}

// Empty reports whether the patch changes nothing.
func (p MealPatch) Empty() bool {
	return p.Description == nil && p.DateAndHour == nil && p.InOrOutDiet == nil
}

// Apply merges the patch onto m.
func (p MealPatch) Apply(m *Meal) {
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.DateAndHour != nil {
		m.DateAndHour = *p.DateAndHour
		m.SetEatenAt()
	}
	if p.InOrOutDiet != nil {
		m.InOrOutDiet = *p.InOrOutDiet
	}
}

// Metrics summarizes a user's meals.
type Metrics struct {
	TotalMeals   int `json:"totalMeals"`
	MealsInDiet  int `json:"mealsInDiet"`
	MealsOutDiet int `json:"mealsOutDiet"`
	MaxSequence  int `json:"maxSequence"`
}
