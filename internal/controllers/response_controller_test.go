package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"forms_portal/internal/middleware"
	"forms_portal/internal/models"
)

func responseRouter() *gin.Engine {
	r := gin.New()
	responses := r.Group("/responses")
	responses.Use(middleware.RequireAuth())
	{
		responses.GET("", ListResponses)
		responses.GET("/:id", GetResponse)
		responses.GET("/user/section/:sectionId", GetUserSectionResponse)
		responses.POST("/save", SaveResponse)
		responses.POST("/:id/submit", SubmitResponse)
	}
	return r
}

func TestListResponsesUserScope(t *testing.T) {
	mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE user_id = \$1`).
		WithArgs(uint(42)).
		WillReturnRows(responseRow(10, 42, 1, 2, true))
	// joined summaries
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).AddRow(42, "Jane", "jane@example.com", "user"))
	mock.ExpectQuery(`SELECT (.+) FROM "sections"`).
		WillReturnRows(sectionRow(1, 2))
	mock.ExpectQuery(`SELECT (.+) FROM "banks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "logo", "is_active"}).AddRow(2, "Acme Bank", "", true))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodGet, "/responses", "", token)

	body := decodeBody(t, rr, http.StatusOK)
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one response, got %v", body["data"])
	}
	row := data[0].(map[string]interface{})
	if row["user_id"].(float64) != 42 {
		t.Fatalf("row does not belong to the caller: %v", row)
	}
}

func TestListResponsesAgentWithoutBank(t *testing.T) {
	setupMockDB(t)

	token := tokenFor(t, 5, models.RoleAgent, nil)
	rr := doRequest(t, responseRouter(), http.MethodGet, "/responses", "", token)

	decodeBody(t, rr, http.StatusBadRequest)
}

func TestListResponsesAgentScope(t *testing.T) {
	mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE bank_id = \$1`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows(responseColumns()))

	bankID := uint(2)
	token := tokenFor(t, 5, models.RoleAgent, &bankID)
	rr := doRequest(t, responseRouter(), http.MethodGet, "/responses", "", token)

	decodeBody(t, rr, http.StatusOK)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetResponseOutOfScopeIs404(t *testing.T) {
	mock := setupMockDB(t)

	// The row exists for someone else; the scoped query simply misses it.
	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE (.+)`).
		WillReturnRows(sqlmock.NewRows(responseColumns()))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodGet, "/responses/10", "", token)

	decodeBody(t, rr, http.StatusNotFound)
}

func TestGetUserSectionResponseNull(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE user_id = \$1 AND section_id = \$2`).
		WithArgs(uint(42), uint(3)).
		WillReturnRows(sqlmock.NewRows(responseColumns()))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodGet, "/responses/user/section/3", "", token)

	body := decodeBody(t, rr, http.StatusOK)
	if body["data"] != nil {
		t.Fatalf("expected null data for an unstarted section, got %v", body["data"])
	}
}

func TestSaveResponseMissingFields(t *testing.T) {
	setupMockDB(t)

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/save",
		`{"sectionId": 3}`, token)

	decodeBody(t, rr, http.StatusBadRequest)
}

func TestSaveResponseUpserts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "sections" WHERE`).
		WillReturnRows(sectionRow(3, 2))
	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(questionRows(3))
	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE user_id = \$1 AND section_id = \$2`).
		WithArgs(uint(42), uint(3)).
		WillReturnRows(sqlmock.NewRows(responseColumns()))
	mock.ExpectQuery(`INSERT INTO "form_responses" (.+) ON CONFLICT \("user_id","section_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE user_id = \$1 AND section_id = \$2`).
		WithArgs(uint(42), uint(3)).
		WillReturnRows(responseRow(10, 42, 3, 2, false))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/save",
		`{"sectionId": 3, "bankId": 2, "responses": [{"questionId":1,"value":"Jane"},{"questionId":2,"value":["theft"]}]}`,
		token)

	body := decodeBody(t, rr, http.StatusOK)
	data := body["data"].(map[string]interface{})
	if data["is_submitted"].(bool) {
		t.Fatalf("fresh save must not be submitted: %v", data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveResponseRejectsBadAnswerShape(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "sections" WHERE`).
		WillReturnRows(sectionRow(3, 2))
	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(questionRows(3))

	token := tokenFor(t, 42, models.RoleUser, nil)
	// checkbox answered with a bare string
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/save",
		`{"sectionId": 3, "bankId": 2, "responses": [{"questionId":2,"value":"theft"}]}`,
		token)

	decodeBody(t, rr, http.StatusBadRequest)
}

func TestSaveResponseAfterSubmitConflicts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "sections" WHERE`).
		WillReturnRows(sectionRow(3, 2))
	mock.ExpectQuery(`SELECT (.+) FROM "questions" WHERE`).
		WillReturnRows(questionRows(3))
	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE user_id = \$1 AND section_id = \$2`).
		WithArgs(uint(42), uint(3)).
		WillReturnRows(responseRow(10, 42, 3, 2, true))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/save",
		`{"sectionId": 3, "bankId": 2, "responses": [{"questionId":1,"value":"edit"}]}`,
		token)

	decodeBody(t, rr, http.StatusConflict)
}

func TestSubmitResponse(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint(10), uint(42)).
		WillReturnRows(responseRow(10, 42, 3, 2, false))
	mock.ExpectExec(`UPDATE "form_responses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/10/submit", "", token)

	body := decodeBody(t, rr, http.StatusOK)
	data := body["data"].(map[string]interface{})
	if !data["is_submitted"].(bool) {
		t.Fatalf("expected submitted response, got %v", data)
	}
	if data["submitted_at"] == nil {
		t.Fatalf("expected submitted_at to be set, got %v", data)
	}
}

func TestSubmitResponseNotOwnedIs404(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint(10), uint(99)).
		WillReturnRows(sqlmock.NewRows(responseColumns()))

	token := tokenFor(t, 99, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/10/submit", "", token)

	decodeBody(t, rr, http.StatusNotFound)
}

func TestSubmitResponseTwiceIsIdempotent(t *testing.T) {
	mock := setupMockDB(t)

	// Already submitted: no UPDATE is issued.
	mock.ExpectQuery(`SELECT (.+) FROM "form_responses" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint(10), uint(42)).
		WillReturnRows(responseRow(10, 42, 3, 2, true))

	token := tokenFor(t, 42, models.RoleUser, nil)
	rr := doRequest(t, responseRouter(), http.MethodPost, "/responses/10/submit", "", token)

	body := decodeBody(t, rr, http.StatusOK)
	data := body["data"].(map[string]interface{})
	if !data["is_submitted"].(bool) {
		t.Fatalf("expected response to stay submitted, got %v", data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements issued: %v", err)
	}
}
