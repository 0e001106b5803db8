package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

// registerAndLogin creates an account and returns its bearer token and user id.
func registerAndLogin(t *testing.T, ts *testServer, name, email string) (string, string) {
	status, _, body := ts.post(t, "/v1/users/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "Test_1234!",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	userID, ok := user["id"].(string)
	require.True(t, ok)

	status, _, body = ts.post(t, "/v1/users/login", map[string]any{
		"email":    email,
		"password": "Test_1234!",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	token, ok := body["token"].(map[string]any)
	require.True(t, ok)
	tokenString, ok := token["token"].(string)
	require.True(t, ok)

	return tokenString, userID
}

func TestRegisterUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantBody   envelope
	}{
		{
			name: "Valid Request",
			payload: map[string]any{
				"name":     "Jane Doe",
				"email":    "jane@example.com",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "Invalid Email",
			payload: map[string]any{
				"name":     "Jane Doe",
				"email":    "jane",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"email": "must be a valid email address"}},
		},
		{
			name: "Duplicate Email",
			payload: map[string]any{
				"name":     "Jane Clone",
				"email":    "jane@example.com",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"email": "a user with this email address already exists"}},
		},
		{
			name: "Weak Password",
			payload: map[string]any{
				"name":     "Jane Doe",
				"email":    "jane2@example.com",
				"password": "password",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"password": "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol"}},
		},
		{
			name:       "Empty Payload",
			payload:    map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]any{"name": "must be provided", "email": "must be provided", "password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users/register", tc.payload, nil)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.Equal(t, tc.wantBody["error"], body["error"])
			}
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, _ := ts.post(t, "/v1/users/register", map[string]any{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "Test_1234!",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name: "Valid Credentials",
			payload: map[string]any{
				"email":    "jane@example.com",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			payload: map[string]any{
				"email":    "jane@example.com",
				"password": "Wrong_1234!",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			payload: map[string]any{
				"email":    "nobody@example.com",
				"password": "Test_1234!",
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users/login", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if status == http.StatusOK {
				token, ok := body["token"].(map[string]any)
				require.True(t, ok)
				assert.NotEmpty(t, token["token"])
			}
		})
	}
}

func TestCreateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, userID := registerAndLogin(t, ts, "Jane Doe", "jane@example.com")

	testCases := []struct {
		name       string
		payload    any
		token      *string
		wantStatus int
	}{
		{
			name: "Valid Blog",
			payload: map[string]any{
				"title":   "A",
				"content": "B",
				"genre":   "Tech",
			},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Valid Blog With Image",
			payload: map[string]any{
				"title":    "With Image",
				"content":  "Body",
				"genre":    "Travel",
				"imageUrl": "https://images.example.com/blog-thumbnails/abc.png",
			},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Missing Genre",
			payload: map[string]any{
				"title":   "A",
				"content": "B",
			},
			token:      &token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Title",
			payload: map[string]any{
				"content": "B",
				"genre":   "Tech",
			},
			token:      &token,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "No Token",
			payload: map[string]any{
				"title":   "A",
				"content": "B",
				"genre":   "Tech",
			},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Garbage Token",
			payload: map[string]any{
				"title":   "A",
				"content": "B",
				"genre":   "Tech",
			},
			token:      strptr("garbage"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/blogs", tc.payload, tc.token)
			assert.Equal(t, tc.wantStatus, status)

			if status == http.StatusCreated {
				blog, ok := body["blog"].(map[string]any)
				require.True(t, ok)
				assert.NotEmpty(t, blog["id"])
				assert.Equal(t, userID, blog["authorId"])
				assert.NotEmpty(t, blog["createdAt"])
			}
		})
	}
}

// TestBlogOwnership walks the full ownership scenario: a blog created by one
// user cannot be updated or deleted by another, and the rejection is
// indistinguishable from a missing blog.
func TestBlogOwnership(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tokenU1, userID1 := registerAndLogin(t, ts, "User One", "u1@example.com")
	tokenU2, _ := registerAndLogin(t, ts, "User Two", "u2@example.com")

	// create as u1
	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title":   "A",
		"content": "B",
		"genre":   "Tech",
	}, &tokenU1)
	require.Equal(t, http.StatusCreated, status)

	blog := body["blog"].(map[string]any)
	blogID := blog["id"].(string)
	assert.Equal(t, userID1, blog["authorId"])

	// update as u2 is a 404, not a 403
	status, _, _ = ts.put(t, "/v1/blogs/"+blogID, map[string]any{"title": "X"}, &tokenU2)
	assert.Equal(t, http.StatusNotFound, status)

	// the blog is untouched
	status, _, body = ts.get(t, "/v1/blogs/"+blogID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A", body["blog"].(map[string]any)["title"])

	// update as u1 changes the title and keeps the genre
	status, _, body = ts.put(t, "/v1/blogs/"+blogID, map[string]any{"title": "X"}, &tokenU1)
	require.Equal(t, http.StatusOK, status)
	updated := body["blog"].(map[string]any)
	assert.Equal(t, "X", updated["title"])
	assert.Equal(t, "Tech", updated["genre"])
	assert.Equal(t, userID1, updated["authorId"])

	// delete as u2 is a 404 and leaves the blog retrievable
	status, _, _ = ts.delete(t, "/v1/blogs/"+blogID, &tokenU2)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.get(t, "/v1/blogs/"+blogID, nil)
	assert.Equal(t, http.StatusOK, status)

	// delete as u1 removes it
	status, _, body = ts.delete(t, "/v1/blogs/"+blogID, &tokenU1)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "blog deleted", body["message"])

	status, _, _ = ts.get(t, "/v1/blogs/"+blogID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListBlogsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := registerAndLogin(t, ts, "Jane Doe", "jane@example.com")

	for i := 0; i < 3; i++ {
		status, _, _ := ts.post(t, "/v1/blogs", map[string]any{
			"title":   fmt.Sprintf("Post %d", i),
			"content": "Body",
			"genre":   "Tech",
		}, &token)
		require.Equal(t, http.StatusCreated, status)
	}

	// listing is public and carries the author projection
	status, _, body := ts.get(t, "/v1/blogs", nil)
	require.Equal(t, http.StatusOK, status)

	blogs, ok := body["blogs"].([]any)
	require.True(t, ok)
	assert.Len(t, blogs, 3)

	for _, b := range blogs {
		author, ok := b.(map[string]any)["author"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", author["name"])
		assert.Equal(t, "jane@example.com", author["email"])
	}
}

func TestListOwnBlogsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tokenU1, userID1 := registerAndLogin(t, ts, "User One", "u1@example.com")
	tokenU2, _ := registerAndLogin(t, ts, "User Two", "u2@example.com")

	for i := 0; i < 2; i++ {
		status, _, _ := ts.post(t, "/v1/blogs", map[string]any{
			"title":   fmt.Sprintf("U1 Post %d", i),
			"content": "Body",
			"genre":   "Tech",
		}, &tokenU1)
		require.Equal(t, http.StatusCreated, status)
	}

	status, _, _ := ts.post(t, "/v1/blogs", map[string]any{
		"title":   "U2 Post",
		"content": "Body",
		"genre":   "Travel",
	}, &tokenU2)
	require.Equal(t, http.StatusCreated, status)

	// the own-posts listing is scoped to the caller
	status, _, body := ts.get(t, "/v1/blogs/user/blogs", &tokenU1)
	require.Equal(t, http.StatusOK, status)

	blogs, ok := body["blogs"].([]any)
	require.True(t, ok)
	assert.Len(t, blogs, 2)
	for _, b := range blogs {
		assert.Equal(t, userID1, b.(map[string]any)["authorId"])
	}

	// and requires authentication
	status, _, _ = ts.get(t, "/v1/blogs/user/blogs", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// only the literal "user" segment is a route
	status, _, _ = ts.get(t, "/v1/blogs/"+userID1+"/blogs", &tokenU1)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := registerAndLogin(t, ts, "Jane Doe", "jane@example.com")

	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title":   "A",
		"content": "B",
		"genre":   "Tech",
	}, &token)
	require.Equal(t, http.StatusCreated, status)
	blogID := body["blog"].(map[string]any)["id"].(string)

	t.Run("Found", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/blogs/"+blogID, nil)
		require.Equal(t, http.StatusOK, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "A", blog["title"])
		author := blog["author"].(map[string]any)
		assert.Equal(t, "Jane Doe", author["name"])
	})

	t.Run("Unknown ID", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/blogs/0b19e706-4c6f-44ac-9b1d-4b3f19e8a8f2", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		status, _, _ := ts.get(t, "/v1/blogs/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestUpdateBlogRejectsUnknownFields(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := registerAndLogin(t, ts, "Jane Doe", "jane@example.com")

	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title":   "A",
		"content": "B",
		"genre":   "Tech",
	}, &token)
	require.Equal(t, http.StatusCreated, status)
	blogID := body["blog"].(map[string]any)["id"].(string)

	// authorId is not a mutable field
	status, _, _ = ts.put(t, "/v1/blogs/"+blogID, map[string]any{
		"title":    "X",
		"authorId": "0b19e706-4c6f-44ac-9b1d-4b3f19e8a8f2",
	}, &token)
	assert.Equal(t, http.StatusBadRequest, status)

	// neither is createdAt
	status, _, _ = ts.put(t, "/v1/blogs/"+blogID, map[string]any{
		"createdAt": "2020-01-01T00:00:00Z",
	}, &token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}
