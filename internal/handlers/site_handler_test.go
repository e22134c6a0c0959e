package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tinysteps/tutor-scheduler/internal/cache"
	"github.com/tinysteps/tutor-scheduler/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.Register()
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, func() { sqlDB.Close() }
}

func newSiteRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")

	h := NewSiteHandler(db, cache.NewGoals(db, nil, 0), zap.NewNop())
	r.GET("/", h.Index)
	r.GET("/profile/:slug", h.Profile)
	r.GET("/goals/:goal", h.GoalTeachers)
	r.GET("/search", h.Search)
	r.NoRoute(h.NotFound)
	return r
}

func expectGoalsNav(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "goals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "For travel", "travel"))
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "about", "picture", "price", "rating", "goals", "slug"})
}

func TestIndexFullList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)
	mock.ExpectQuery(`SELECT \* FROM "teachers"`).
		WillReturnRows(teacherRows().
			AddRow(1, "Ivan Petrov", "", "", 900, 4.8, "travel//work", "ivan-petrov").
			AddRow(2, "Anna Lee", "", "", 1500, 4.7, "work", "anna-lee"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?teachers_count=all", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ivan Petrov")
	assert.Contains(t, w.Body.String(), "Anna Lee")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Sampling 6 from a smaller catalog is an explicit failure, not a short page.
func TestIndexSampleTooSmallCatalog(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)
	mock.ExpectQuery(`SELECT \* FROM "teachers"`).
		WillReturnRows(teacherRows().
			AddRow(1, "Ivan Petrov", "", "", 900, 4.8, "travel", "ivan-petrov").
			AddRow(2, "Anna Lee", "", "", 1500, 4.7, "work", "anna-lee").
			AddRow(3, "James Carter", "", "", 2000, 5.0, "move", "james-carter"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRendersSchedule(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)
	mock.ExpectQuery(`SELECT \* FROM "teachers" WHERE slug = \$1`).
		WithArgs("ivan-petrov", 1).
		WillReturnRows(teacherRows().
			AddRow(1, "Ivan Petrov", "About", "", 900, 4.8, "travel", "ivan-petrov"))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE "bookings"\."teacher_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "schedule", "version"}).
			AddRow(1, 1, []byte(`{"mon":{"18:00":true,"20:00":false}}`), 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/ivan-petrov", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Monday")
	assert.Contains(t, body, `day=mon&amp;hour=18:00`, "free slot links to booking")
	assert.Contains(t, body, `<span class="busy">20:00</span>`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUnknownSlugIs404(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)
	mock.ExpectQuery(`SELECT \* FROM "teachers" WHERE slug = \$1`).
		WithArgs("nobody", 1).
		WillReturnRows(teacherRows())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile/nobody", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalTeachersOrderedByPrice(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)
	mock.ExpectQuery(`SELECT \* FROM "goals" WHERE slug = \$1`).
		WithArgs("travel", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "For travel", "travel"))
	mock.ExpectQuery(`SELECT \* FROM "teachers" WHERE \$1 = ANY\(string_to_array\(goals, \$2\)\) ORDER BY price`).
		WithArgs("travel", "//").
		WillReturnRows(teacherRows().
			AddRow(4, "Sergey Volkov", "", "", 700, 4.5, "travel", "sergey-volkov").
			AddRow(1, "Ivan Petrov", "", "", 900, 4.8, "travel//work", "ivan-petrov"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/travel", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Sergey Volkov"), strings.Index(body, "Ivan Petrov"),
		"cheapest tutor first")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnknownRouteIs404(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	r := newSiteRouter(db)

	expectGoalsNav(mock)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
