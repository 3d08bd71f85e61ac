package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

func TestProfileHandler_Me(t *testing.T) {
	stub := &stubProfileService{
		getFn: func(_ context.Context, userID string) (*ports.ProfileStatus, error) {
			return &ports.ProfileStatus{
				Profile:    &domain.Profile{UserID: userID, Role: domain.RoleAdmin},
				Missing:    []string{"city"},
				Completion: 90,
			}, nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/me", nil)
	withSession(c, "u1")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.IsAdmin || resp.Role != domain.RoleAdmin {
		t.Fatalf("expected admin summary, got %+v", resp)
	}
	if resp.Landing != domain.LandingProfile || resp.Completion != 90 {
		t.Fatalf("unexpected completeness summary: %+v", resp)
	}
}

func TestProfileHandler_Me_RequiresSession(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{})

	c, _ := newTestContext(http.MethodGet, "/v1/me", nil)
	expectHTTPError(t, h.Me(c), http.StatusUnauthorized)
}

func TestProfileHandler_Get_NoProfileYet(t *testing.T) {
	stub := &stubProfileService{
		getFn: func(context.Context, string) (*ports.ProfileStatus, error) {
			return &ports.ProfileStatus{Missing: []string{"first_name", "last_name"}}, nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/profile", nil)
	withSession(c, "u1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"profile":null`) {
		t.Fatalf("expected null profile, got %s", rec.Body.String())
	}
}

func TestProfileHandler_Save(t *testing.T) {
	var got ports.ProfileInput
	stub := &stubProfileService{
		saveFn: func(_ context.Context, userID string, in ports.ProfileInput) (*ports.ProfileStatus, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %s", userID)
			}
			got = in
			return &ports.ProfileStatus{Profile: &domain.Profile{UserID: userID, FirstName: in.FirstName}, Complete: true, Completion: 100}, nil
		},
	}
	h := NewProfileHandler(stub)

	body := `{"first_name":"Ana","skills":["go","sql"],"github_url":"https://github.com/ana"}`
	c, rec := newTestContext(http.MethodPut, "/v1/profile", strings.NewReader(body))
	withSession(c, "u1")
	if err := h.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got.FirstName != "Ana" || len(got.Skills) != 2 || got.GitHubURL != "https://github.com/ana" {
		t.Fatalf("payload not mapped: %+v", got)
	}
	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Complete || resp.Completion != 100 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProfileHandler_Save_InvalidURL(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{})

	c, _ := newTestContext(http.MethodPut, "/v1/profile", strings.NewReader(`{"linkedin_url":"not a url"}`))
	withSession(c, "u1")
	expectHTTPError(t, h.Save(c), http.StatusUnprocessableEntity)
}

func TestProfileHandler_Save_RoleEscalation(t *testing.T) {
	stub := &stubProfileService{
		saveFn: func(context.Context, string, ports.ProfileInput) (*ports.ProfileStatus, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/v1/profile", strings.NewReader(`{"role":"admin"}`))
	withSession(c, "u1")
	if err := h.Save(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProfileHandler_Evaluate(t *testing.T) {
	stub := &stubProfileService{
		evaluateFn: func(in ports.ProfileInput) *ports.ProfileStatus {
			return &ports.ProfileStatus{Missing: []string{"email"}, Completion: 92}
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/profile/completeness", strings.NewReader(`{"first_name":"Ana"}`))
	withSession(c, "u1")
	if err := h.Evaluate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Complete || len(resp.Missing) != 1 || resp.Missing[0] != "email" {
		t.Fatalf("unexpected evaluation: %+v", resp)
	}
}

func multipartAvatar(t *testing.T, filename, contentType string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestProfileHandler_UploadAvatar(t *testing.T) {
	var got ports.AvatarUpload
	stub := &stubProfileService{
		uploadFn: func(_ context.Context, userID string, up ports.AvatarUpload) (string, error) {
			got = up
			data, _ := io.ReadAll(up.Content)
			if string(data) != "png-bytes" {
				t.Fatalf("unexpected content %q", data)
			}
			return "http://localhost:8080/storage/avatars/" + userID + ".png", nil
		},
	}
	h := NewProfileHandler(stub)

	body, ct := multipartAvatar(t, "me.png", "image/png", []byte("png-bytes"))
	c, rec := newTestContext(http.MethodPost, "/v1/profile/avatar", body)
	c.Request().Header.Set(echo.HeaderContentType, ct)
	withSession(c, "u1")

	if err := h.UploadAvatar(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Filename != "me.png" || got.ContentType != "image/png" || got.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected upload: %+v", got)
	}
	if !strings.Contains(rec.Body.String(), "/storage/avatars/u1.png") {
		t.Fatalf("expected avatar url in body, got %s", rec.Body.String())
	}
}

func TestProfileHandler_UploadAvatar_MissingFile(t *testing.T) {
	h := NewProfileHandler(&stubProfileService{})

	c, _ := newTestContext(http.MethodPost, "/v1/profile/avatar", strings.NewReader(`{}`))
	withSession(c, "u1")
	expectHTTPError(t, h.UploadAvatar(c), http.StatusBadRequest)
}
