package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"forms_portal/internal/middleware"
	"forms_portal/internal/models"
)

func questionRouter() *gin.Engine {
	r := gin.New()
	questions := r.Group("/questions")
	questions.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		questions.POST("", CreateQuestion)
		questions.PUT("/:id", UpdateQuestion)
		questions.DELETE("/:id", DeleteQuestion)
	}
	return r
}

func questionColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "deleted_at",
		"section_id", "type", "label", "placeholder", "required", "options", "order_index",
	}
}

func singleQuestionRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(questionColumns()).
		AddRow(7, now, now, nil, 3, models.QuestionText, "Full name", "", true, nil, 1)
}

func TestUpdateQuestionNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(sqlmock.NewRows(questionColumns()))

	token := tokenFor(t, 1, models.RoleAdmin, nil)
	rr := doRequest(t, questionRouter(), http.MethodPut, "/questions/7",
		`{"label":"Renamed"}`, token)

	decodeBody(t, rr, http.StatusNotFound)
}

func TestUpdateQuestionPartial(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(singleQuestionRow())
	mock.ExpectExec(`UPDATE "questions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := tokenFor(t, 1, models.RoleAdmin, nil)
	rr := doRequest(t, questionRouter(), http.MethodPut, "/questions/7",
		`{"label":"Renamed","required":false}`, token)

	body := decodeBody(t, rr, http.StatusOK)
	data := body["data"].(map[string]interface{})
	if data["label"].(string) != "Renamed" {
		t.Fatalf("label was not updated: %v", data)
	}
	if data["type"].(string) != models.QuestionText {
		t.Fatalf("untouched field changed: %v", data)
	}
}

func TestUpdateQuestionRejectsChoiceWithoutOptions(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(singleQuestionRow())

	token := tokenFor(t, 1, models.RoleAdmin, nil)
	rr := doRequest(t, questionRouter(), http.MethodPut, "/questions/7",
		`{"type":"dropdown"}`, token)

	decodeBody(t, rr, http.StatusBadRequest)
}

func TestDeleteQuestion(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(singleQuestionRow())
	mock.ExpectExec(`UPDATE "questions" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := tokenFor(t, 1, models.RoleAdmin, nil)
	rr := doRequest(t, questionRouter(), http.MethodDelete, "/questions/7", "", token)

	body := decodeBody(t, rr, http.StatusOK)
	if body["message"] == nil {
		t.Fatalf("expected a confirmation message, got %v", body)
	}
}

func TestQuestionRoutesRejectNonAdmins(t *testing.T) {
	setupMockDB(t)

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, questionRouter(), http.MethodDelete, "/questions/7", "", token)

	decodeBody(t, rr, http.StatusForbidden)
}
