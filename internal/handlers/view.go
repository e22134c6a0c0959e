package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/domain/schedule"
	"github.com/tinysteps/tutor-scheduler/internal/models"
)

const (
	siteName     = "Tinysteps - Stepic Teachers"
	defaultImage = "https://images.tinysteps.example/og-default.jpg"
)

// baseView assembles the data every page template expects: site name, the
// goal list for the navigation and the default OG image. A failing goal
// cache degrades to an empty nav, not a broken page.
func baseView(c *gin.Context, goals *cache.Goals, log *zap.Logger, data gin.H) gin.H {
	out := gin.H{
		"SiteName":     siteName,
		"DefaultImage": defaultImage,
	}
	if goals != nil {
		list, err := goals.List(c.Request.Context())
		if err != nil {
			log.Warn("goal navigation unavailable", zap.Error(err))
		} else {
			out["Goals"] = list
		}
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// teacherBySlug resolves the :slug route param and answers the request
// itself on failure. The second return is false when a page was already
// rendered.
func teacherBySlug(c *gin.Context, db *gorm.DB, base gin.H, preloadBookings bool) (*models.Teacher, bool) {
	q := db
	if preloadBookings {
		q = q.Preload("Bookings")
	}

	var teacher models.Teacher
	if err := q.Where("slug = ?", c.Param("slug")).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "404.html", base)
		} else {
			c.HTML(http.StatusInternalServerError, "error.html", base)
		}
		return nil, false
	}
	return &teacher, true
}

// formErrors flattens binding failures into per-field messages for the
// re-rendered form.
func formErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				out[fe.Field()] = "This field is required."
			case "phone":
				out[fe.Field()] = "Enter a valid phone number."
			default:
				out[fe.Field()] = "Invalid value."
			}
		}
		return out
	}

	out["Form"] = "Invalid form submission."
	return out
}

type slotView struct {
	Hour string
	Free bool
}

type dayView struct {
	Code  string
	Name  string
	Slots []slotView
}

// scheduleView orders the availability document for rendering: canonical
// weekday order, hours ascending. Days absent from the document are
// skipped, mirroring the stored grid exactly.
func scheduleView(doc schedule.Document) []dayView {
	var out []dayView
	for _, day := range schedule.Weekdays {
		hours, ok := doc[day]
		if !ok {
			continue
		}
		dv := dayView{Code: day, Name: schedule.DayNames[day]}
		for _, h := range doc.Hours(day) {
			dv.Slots = append(dv.Slots, slotView{Hour: h, Free: hours[h]})
		}
		out = append(out, dv)
	}
	return out
}
