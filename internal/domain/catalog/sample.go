package catalog

import (
	"fmt"
	"math/rand"

	"github.com/tinysteps/tutor-scheduler/internal/models"
)

// FrontPageSize is how many teachers the landing page shows when the full
// list is not requested.
const FrontPageSize = 6

// Sample picks k teachers without replacement in random order. A catalog
// smaller than k is an explicit error, never a short sample.
func Sample(teachers []models.Teacher, k int) ([]models.Teacher, error) {
	if len(teachers) < k {
		return nil, fmt.Errorf("cannot sample %d teachers from %d", k, len(teachers))
	}
	out := make([]models.Teacher, 0, k)
	for _, i := range rand.Perm(len(teachers))[:k] {
		out = append(out, teachers[i])
	}
	return out, nil
}
