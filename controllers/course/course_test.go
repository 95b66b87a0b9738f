package courseController_test

import (
	"testing"

	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoursesCatalog(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db
	category, instructor := seedCatalog(t)
	course := seedCourse(t, "Go Basics", 49, category.ID, instructor.ID)
	student, _ := seedUser(t, "Student", "student@x.com", models.RoleUser)

	require.NoError(t, db.Create(&models.Enrollment{UserID: student.ID, CourseID: course.ID, Status: models.EnrollmentActive}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: student.ID, CourseID: course.ID, Rating: 5, Comment: "great"}).Error)

	resp, err := app.Test(jsonReq(t, "GET", "/api/courses/", "", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := decodeList(t, resp)
	require.Len(t, list, 1)
	first, _ := list[0].(map[string]interface{})
	assert.Equal(t, "Go Basics", first["title"])
	assert.Equal(t, "Data", first["category_name"])
	assert.EqualValues(t, 1, first["enrolled_students"])
	assert.EqualValues(t, 5, first["average_rating"])
	assert.EqualValues(t, 1, first["review_count"])
}

func TestGetCourseWithReviews(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db
	category, instructor := seedCatalog(t)
	course := seedCourse(t, "Go Basics", 49, category.ID, instructor.ID)
	student, _ := seedUser(t, "Student", "student@x.com", models.RoleUser)

	require.NoError(t, db.Create(&models.Review{UserID: student.ID, CourseID: course.ID, Rating: 4, Comment: "solid"}).Error)

	resp, err := app.Test(jsonReq(t, "GET", "/api/courses/1", "", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Go Basics", body["title"])

	reviews, ok := body["reviews"].([]interface{})
	require.True(t, ok)
	require.Len(t, reviews, 1)
	review, _ := reviews[0].(map[string]interface{})
	assert.Equal(t, "solid", review["comment"])
	assert.Equal(t, "Student", review["user_name"])
}

func TestGetCourseNotFound(t *testing.T) {
	app := setupTest(t)

	resp, err := app.Test(jsonReq(t, "GET", "/api/courses/999", "", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found", decodeBody(t, resp)["message"])
}
