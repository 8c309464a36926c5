package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
)

type stubUserService struct {
	created    *users.UserDTO
	list       []users.UserDTO
	details    *users.UserDetailsDTO
	err        error
	lastInput  users.CreateInput
	lastFilter users.ListFilter
	lastID     uuid.UUID
}

func (s *stubUserService) Create(_ context.Context, input users.CreateInput) (*users.UserDTO, error) {
	s.lastInput = input
	return s.created, s.err
}

func (s *stubUserService) List(_ context.Context, filter users.ListFilter) ([]users.UserDTO, error) {
	s.lastFilter = filter
	return s.list, s.err
}

func (s *stubUserService) Details(_ context.Context, id uuid.UUID) (*users.UserDetailsDTO, error) {
	s.lastID = id
	return s.details, s.err
}

func TestAdminCreateUserSuccess(t *testing.T) {
	svc := &stubUserService{created: &users.UserDTO{
		ID:    uuid.New(),
		Name:  "Benjamin Alexander Wallace",
		Email: "benjamin@example.com",
		Role:  enums.RoleAdmin,
	}}
	handler := AdminCreateUser(svc, nil)

	body := []byte(`{"name":"Benjamin Alexander Wallace","email":"benjamin@example.com","password":"Sup3rSecret!","address":"4 Side St","role":"admin"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role got %s", svc.lastInput.Role)
	}
}

func TestAdminCreateUserRejectsUnknownRole(t *testing.T) {
	handler := AdminCreateUser(&stubUserService{}, nil)

	body := []byte(`{"name":"Benjamin Alexander Wallace","email":"benjamin@example.com","password":"Sup3rSecret!","role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminCreateUserConflict(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := AdminCreateUser(svc, nil)

	body := []byte(`{"name":"Benjamin Alexander Wallace","email":"benjamin@example.com","password":"Sup3rSecret!","role":"user"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAdminListUsersFilters(t *testing.T) {
	svc := &stubUserService{list: []users.UserDTO{{ID: uuid.New(), Name: "Benjamin Alexander Wallace"}}}
	handler := AdminListUsers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?role=store_owner&email=corner&sort_by=email&order=desc", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastFilter.Role != enums.RoleStoreOwner || svc.lastFilter.Email != "corner" {
		t.Fatalf("unexpected filter: %+v", svc.lastFilter)
	}
	if svc.lastFilter.SortBy != "email" || svc.lastFilter.Order != "desc" {
		t.Fatalf("unexpected sort: %+v", svc.lastFilter)
	}
}

func TestAdminListUsersRejectsUnknownRole(t *testing.T) {
	handler := AdminListUsers(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users?role=superuser", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUserDetailsIncludesOwnerRating(t *testing.T) {
	id := uuid.New()
	rating := 4.2
	svc := &stubUserService{details: &users.UserDetailsDTO{
		UserDTO: users.UserDTO{ID: id, Name: "Benjamin Alexander Wallace", Role: enums.RoleStoreOwner},
		Rating:  &rating,
	}}
	handler := AdminUserDetails(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/"+id.String(), nil)
	req = withURLParam(req, "userId", id.String())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastID != id {
		t.Fatalf("expected lookup for %s got %s", id, svc.lastID)
	}

	var envelope struct {
		Data struct {
			Rating *float64 `json:"rating"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Rating == nil || *envelope.Data.Rating != 4.2 {
		t.Fatalf("expected rating 4.2 got %v", envelope.Data.Rating)
	}
}

func TestAdminUserDetailsNotFound(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := AdminUserDetails(svc, nil)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/"+id.String(), nil)
	req = withURLParam(req, "userId", id.String())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminUserDetailsRejectsBadID(t *testing.T) {
	handler := AdminUserDetails(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users/not-a-uuid", nil)
	req = withURLParam(req, "userId", "not-a-uuid")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
