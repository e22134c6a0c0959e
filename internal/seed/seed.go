package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/models"
)

type teacherSeed struct {
	Name    string                     `json:"name"`
	About   string                     `json:"about"`
	Picture string                     `json:"picture"`
	Rating  float64                    `json:"rating"`
	Price   int                        `json:"price"`
	Goals   []string                   `json:"goals"`
	Free    map[string]map[string]bool `json:"free"`
}

type seedFile struct {
	Goals    map[string]string `json:"goals"`
	Teachers []teacherSeed     `json:"teachers"`
}

// Run imports the catalog from a JSON seed file. Idempotent: skipped when
// teachers already exist. Slug and SEO fields are derived by the model
// hooks at creation time.
func Run(db *gorm.DB, path string, log *zap.Logger) error {
	if path == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Teacher{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("seed skipped, catalog already populated")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for goalSlug, name := range f.Goals {
			goal := models.Goal{Name: name, Slug: goalSlug}
			if err := tx.Create(&goal).Error; err != nil {
				return fmt.Errorf("seed goal %q: %w", goalSlug, err)
			}
		}

		for _, ts := range f.Teachers {
			teacher := models.Teacher{
				Name:    ts.Name,
				About:   ts.About,
				Picture: ts.Picture,
				Rating:  ts.Rating,
				Price:   ts.Price,
				Goals:   strings.Join(ts.Goals, models.GoalSeparator),
			}
			if err := tx.Create(&teacher).Error; err != nil {
				return fmt.Errorf("seed teacher %q: %w", ts.Name, err)
			}

			doc, err := json.Marshal(ts.Free)
			if err != nil {
				return fmt.Errorf("encode schedule for %q: %w", ts.Name, err)
			}
			booking := models.Booking{
				TeacherID: teacher.ID,
				Schedule:  datatypes.JSON(doc),
				Version:   1,
			}
			if err := tx.Create(&booking).Error; err != nil {
				return fmt.Errorf("seed booking for %q: %w", ts.Name, err)
			}
		}

		log.Info("catalog seeded",
			zap.Int("goals", len(f.Goals)),
			zap.Int("teachers", len(f.Teachers)),
		)
		return nil
	})
}
