package services

import "dailydiet/internal/models"

// ComputeMetrics counts meals by diet and finds the longest run of
// consecutive in-diet meals, in the order given.
func ComputeMetrics(meals []models.Meal) models.Metrics {
	var m models.Metrics
	current := 0
	for _, meal := range meals {
		m.TotalMeals++
		switch meal.InOrOutDiet {
		case models.DietIn:
			m.MealsInDiet++
			current++
			if current > m.MaxSequence {
				m.MaxSequence = current
			}
		case models.DietOut:
			m.MealsOutDiet++
			current = 0
		default:
			current = 0
		}
	}
	return m
}
