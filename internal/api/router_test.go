package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookcook/api/internal/apperr"
	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/seed"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/store"
	"github.com/bookcook/api/internal/websocket"
)

type testServers struct {
	cookbook *httptest.Server
	books    *httptest.Server
	hub      *websocket.Hub
}

func newTestServers(t *testing.T, development bool) testServers {
	t.Helper()

	ctx := context.Background()
	recipes := store.NewMemoryRecipes()
	books := store.NewMemoryBooks()
	users := store.NewMemoryUsers()
	hasher := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, seed.Load(ctx, recipes, books, users, hasher))

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	events := services.NewEventService(store.NewMemoryEventLog(), hub)
	opts := Options{
		Recipes:     services.NewRecipeService(recipes, events),
		Books:       services.NewBookService(books, events),
		Users:       services.NewUserService(users, hasher, events),
		Events:      events,
		Hub:         hub,
		Development: development,
		CORSOrigins: []string{"http://localhost:3000"},
	}

	cookbook := httptest.NewServer(NewCookbookRouter(opts))
	t.Cleanup(cookbook.Close)
	booksSrv := httptest.NewServer(NewBooksRouter(opts))
	t.Cleanup(booksSrv.Close)

	return testServers{cookbook: cookbook, books: booksSrv, hub: hub}
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeEnvelope(t *testing.T, data []byte) apperr.Envelope {
	t.Helper()
	var env apperr.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func assertError(t *testing.T, resp *http.Response, data []byte, status int, message string) {
	t.Helper()
	require.Equal(t, status, resp.StatusCode, string(data))
	env := decodeEnvelope(t, data)
	assert.Equal(t, "error", env.Type)
	assert.Equal(t, status, env.Status)
	assert.Equal(t, message, env.Message)
}

func TestBooksCRUD(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	base := srv.books.URL + "/api/books"

	resp, data := do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var books []models.Book
	require.NoError(t, json.Unmarshal(data, &books))
	assert.Len(t, books, 5)

	resp, data = do(t, http.MethodPost, base, `{"id":6,"title":"The Hobbit","author":"J.R.R. Tolkien"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"id":6}`, string(data))

	resp, data = do(t, http.MethodGet, base+"/6", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":6,"title":"The Hobbit","author":"J.R.R. Tolkien"}`, string(data))

	resp, data = do(t, http.MethodPost, base, `{"id":6,"title":"The Hobbit","author":"J.R.R. Tolkien"}`)
	assertError(t, resp, data, http.StatusConflict, "Conflict")

	resp, data = do(t, http.MethodPut, base+"/6", `{"title":"The Hobbit, or There and Back Again","author":"J.R.R. Tolkien"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, string(data))
	assert.Empty(t, data)

	resp, data = do(t, http.MethodGet, base+"/6", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "There and Back Again")

	resp, _ = do(t, http.MethodDelete, base+"/6", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, http.MethodGet, base+"/6", "")
	assertError(t, resp, data, http.StatusNotFound, "Book not found")

	resp, data = do(t, http.MethodDelete, base+"/6", "")
	assertError(t, resp, data, http.StatusNotFound, "Book not found")

	resp, data = do(t, http.MethodPut, base+"/6", `{"title":"Gone","author":"Nobody"}`)
	assertError(t, resp, data, http.StatusNotFound, "Book not found")
}

func TestBooksValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	base := srv.books.URL + "/api/books"

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"non numeric get", http.MethodGet, "/foo", "", "Input must be a number"},
		{"partly numeric get", http.MethodGet, "/12abc", "", "Input must be a number"},
		{"non numeric delete", http.MethodDelete, "/foo", "", "Input must be a number"},
		{"id checked before body", http.MethodPut, "/foo", `{"nope":true}`, "Input must be a number"},
		{"missing key", http.MethodPost, "", `{"id":7,"title":"Dune"}`, "Bad Request"},
		{"extra key", http.MethodPost, "", `{"id":7,"title":"Dune","author":"Frank Herbert","year":1965}`, "Bad Request"},
		{"empty title", http.MethodPost, "", `{"id":7,"title":"","author":"Frank Herbert"}`, "Bad Request"},
		{"wrong type", http.MethodPost, "", `{"id":"seven","title":"Dune","author":"Frank Herbert"}`, "Bad Request"},
		{"null id", http.MethodPost, "", `{"id":null,"title":"Dune","author":"Frank Herbert"}`, "Bad Request"},
		{"not json", http.MethodPost, "", `title=Dune`, "Bad Request"},
		{"update with id", http.MethodPut, "/1", `{"id":1,"title":"Dune","author":"Frank Herbert"}`, "Bad Request"},
		{"update missing author", http.MethodPut, "/1", `{"title":"Dune"}`, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, tt.method, base+tt.path, tt.body)
			assertError(t, resp, data, http.StatusBadRequest, tt.message)
		})
	}

	// Rejected writes leave the collection untouched.
	resp, data := do(t, http.MethodGet, base+"/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "The Fellowship of the Ring")

	resp, data = do(t, http.MethodGet, base+"/0", "")
	assertError(t, resp, data, http.StatusNotFound, "Book not found")
}

func TestRecipesCRUD(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	base := srv.cookbook.URL + "/api/recipes"

	resp, data := do(t, http.MethodGet, base+"/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":1,"name":"Pancakes","ingredients":["flour","milk","eggs"]}`, string(data))

	resp, data = do(t, http.MethodPost, base, `{"id":4,"name":"Omelette","ingredients":["eggs","butter"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"id":4}`, string(data))

	resp, data = do(t, http.MethodPost, base, `{"id":1,"name":"Waffles","ingredients":["flour"]}`)
	assertError(t, resp, data, http.StatusConflict, "Conflict")

	resp, data = do(t, http.MethodPost, base, `{"id":5,"name":"Toast"}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	resp, data = do(t, http.MethodPost, base, `{"id":null,"name":"Toast","ingredients":["bread"]}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	// Zero is a valid id when sent explicitly.
	resp, data = do(t, http.MethodPost, base, `{"id":0,"name":"Toast","ingredients":["bread"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"id":0}`, string(data))

	resp, _ = do(t, http.MethodPut, base+"/4", `{"name":"Cheese Omelette","ingredients":["eggs","butter","cheese"]}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, http.MethodGet, base+"/4", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":4,"name":"Cheese Omelette","ingredients":["eggs","butter","cheese"]}`, string(data))

	resp, data = do(t, http.MethodPut, base+"/4", `{"name":"Cheese Omelette"}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	resp, _ = do(t, http.MethodDelete, base+"/4", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, http.MethodGet, base+"/4", "")
	assertError(t, resp, data, http.StatusNotFound, "Recipe not found")

	resp, data = do(t, http.MethodGet, base+"/abc", "")
	assertError(t, resp, data, http.StatusBadRequest, "Input must be a number")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	url := srv.books.URL + "/api/users/login"

	resp, data := do(t, http.MethodPost, url, `{"email":"harry@hogwarts.edu","password":"potter"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"message":"Authentication successful"}`, string(data))

	resp, data = do(t, http.MethodPost, url, `{"email":"harry@hogwarts.edu","password":"malfoy"}`)
	assertError(t, resp, data, http.StatusUnauthorized, "Unauthorized")

	resp, data = do(t, http.MethodPost, url, `{"email":"ron@hogwarts.edu","password":"weasley"}`)
	assertError(t, resp, data, http.StatusNotFound, "User not found")

	resp, data = do(t, http.MethodPost, url, `{"email":"harry@hogwarts.edu"}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	resp, data = do(t, http.MethodPost, url, `{"email":"harry@hogwarts.edu","password":"potter","remember":true}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")
}

func TestRegister(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	url := srv.cookbook.URL + "/api/register"

	resp, data := do(t, http.MethodPost, url, `{"email":"ron@hogwarts.edu","password":"weasley"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"user":{"email":"ron@hogwarts.edu"},"message":"Registration successful"}`, string(data))
	assert.NotContains(t, string(data), "password")

	resp, data = do(t, http.MethodPost, url, `{"email":"ron@hogwarts.edu","password":"scabbers"}`)
	assertError(t, resp, data, http.StatusConflict, "Conflict")

	resp, data = do(t, http.MethodPost, url, `{"email":"ginny@hogwarts.edu"}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	// The new account can log in on the books service, which shares the user collection.
	resp, data = do(t, http.MethodPost, srv.books.URL+"/api/users/login", `{"email":"ron@hogwarts.edu","password":"weasley"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
}

func TestVerifySecurityQuestions(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	url := func(email string) string {
		return srv.books.URL + "/api/users/" + email + "/verify-security-question"
	}
	correct := `{"securityQuestions":[{"answer":"Fluffy"},{"answer":"Quidditch Through the Ages"},{"answer":"Evans"}]}`

	resp, data := do(t, http.MethodPost, url("harry@hogwarts.edu"), correct)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"message":"Security questions successfully answered"}`, string(data))

	resp, data = do(t, http.MethodPost, url("harry@hogwarts.edu"),
		`{"securityQuestions":[{"answer":"Fluffy"},{"answer":"Quidditch Through the Ages"},{"answer":"Potter"}]}`)
	assertError(t, resp, data, http.StatusUnauthorized, "Unauthorized")

	resp, data = do(t, http.MethodPost, url("harry@hogwarts.edu"), `{"securityQuestions":[{"answer":"Fluffy"}]}`)
	assertError(t, resp, data, http.StatusUnauthorized, "Unauthorized")

	resp, data = do(t, http.MethodPost, url("ron@hogwarts.edu"), correct)
	assertError(t, resp, data, http.StatusNotFound, "User not found")

	for _, body := range []string{
		`{}`,
		`{"securityQuestions":"Fluffy"}`,
		`{"securityQuestions":[{"answer":1}]}`,
		`{"securityQuestions":[{"answer":"Fluffy","question":"Pet?"}]}`,
		`{"securityQuestions":[],"email":"harry@hogwarts.edu"}`,
	} {
		resp, data = do(t, http.MethodPost, url("harry@hogwarts.edu"), body)
		assertError(t, resp, data, http.StatusBadRequest, "Bad Request")
	}
}

func TestResetPassword(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	url := srv.cookbook.URL + "/api/users/hermione@hogwarts.edu/reset-password"
	answers := `[{"answer":"Crookshanks"},{"answer":"Hogwarts: A History"},{"answer":"Wilkins"}]`

	resp, data := do(t, http.MethodPost, url, `{"newPassword":"leviosa","securityQuestions":[{"answer":"Hedwig"},{"answer":"Hogwarts: A History"},{"answer":"Wilkins"}]}`)
	assertError(t, resp, data, http.StatusUnauthorized, "Unauthorized")

	resp, data = do(t, http.MethodPost, url, `{"securityQuestions":`+answers+`}`)
	assertError(t, resp, data, http.StatusBadRequest, "Bad Request")

	resp, data = do(t, http.MethodPost, srv.cookbook.URL+"/api/users/ron@hogwarts.edu/reset-password", `{"newPassword":"leviosa","securityQuestions":`+answers+`}`)
	assertError(t, resp, data, http.StatusNotFound, "User not found")

	resp, data = do(t, http.MethodPost, url, `{"newPassword":"leviosa","securityQuestions":`+answers+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"message":"Password reset successful"}`, string(data))

	login := srv.books.URL + "/api/users/login"
	resp, data = do(t, http.MethodPost, login, `{"email":"hermione@hogwarts.edu","password":"granger"}`)
	assertError(t, resp, data, http.StatusUnauthorized, "Unauthorized")

	resp, data = do(t, http.MethodPost, login, `{"email":"hermione@hogwarts.edu","password":"leviosa"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
}

func TestNotFoundEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("production hides stack", func(t *testing.T) {
		t.Parallel()
		srv := newTestServers(t, false)

		resp, data := do(t, http.MethodGet, srv.cookbook.URL+"/api/nothing-here", "")
		assertError(t, resp, data, http.StatusNotFound, "Not Found")
		assert.NotContains(t, string(data), "stack")

		// Books routes do not exist on the cookbook service.
		resp, data = do(t, http.MethodGet, srv.cookbook.URL+"/api/books", "")
		assertError(t, resp, data, http.StatusNotFound, "Not Found")

		// Unsupported methods get the same envelope.
		resp, data = do(t, http.MethodPatch, srv.books.URL+"/api/books/1", `{}`)
		assertError(t, resp, data, http.StatusNotFound, "Not Found")
	})

	t.Run("development includes stack", func(t *testing.T) {
		t.Parallel()
		srv := newTestServers(t, true)

		resp, data := do(t, http.MethodGet, srv.books.URL+"/api/nothing-here", "")
		assertError(t, resp, data, http.StatusNotFound, "Not Found")
		env := decodeEnvelope(t, data)
		assert.NotEmpty(t, env.Stack)
	})
}

func TestLandingPages(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)

	resp, data := do(t, http.MethodGet, srv.cookbook.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(data), "Cookbook")

	resp, data = do(t, http.MethodGet, srv.books.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "In-N-Out-Books")
}

func TestEventsEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)

	resp, data := do(t, http.MethodGet, srv.books.URL+"/api/events", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))

	resp, _ = do(t, http.MethodPost, srv.books.URL+"/api/books", `{"id":6,"title":"Dune","author":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, http.MethodDelete, srv.books.URL+"/api/books/6", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Failed requests do not record activity.
	resp, _ = do(t, http.MethodDelete, srv.books.URL+"/api/books/6", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Both services read the same log.
	resp, data = do(t, http.MethodGet, srv.cookbook.URL+"/api/events?limit=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []models.Event
	require.NoError(t, json.Unmarshal(data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "book.delete", events[0].Type)

	resp, data = do(t, http.MethodGet, srv.cookbook.URL+"/api/events?limit=oops", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &events))
	assert.Len(t, events, 2)
}

func TestEventFeed(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)

	wsURL := "ws" + strings.TrimPrefix(srv.cookbook.URL, "http") + "/api/events/ws"
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, _ := do(t, http.MethodPost, srv.cookbook.URL+"/api/recipes", `{"id":9,"name":"Porridge","ingredients":["oats","milk"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Action  string       `json:"action"`
		Payload models.Event `json:"payload"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(raw)).Decode(&msg))
	assert.Equal(t, "event", msg.Action)
	assert.Equal(t, "recipe.create", msg.Payload.Type)
	assert.Equal(t, "recipe:9", msg.Payload.Subject)
}

func TestEncodedEmailPathSegment(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)

	resp, data := do(t, http.MethodPost, srv.books.URL+"/api/users/harry%40hogwarts.edu/verify-security-question",
		`{"securityQuestions":[{"answer":"Fluffy"},{"answer":"Quidditch Through the Ages"},{"answer":"Evans"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, `{"message":"Security questions successfully answered"}`, string(data))

	resp, data = do(t, http.MethodPost, srv.cookbook.URL+"/api/users/hermione%40hogwarts.edu/reset-password",
		`{"newPassword":"alohomora","securityQuestions":[{"answer":"Crookshanks"},{"answer":"Hogwarts: A History"},{"answer":"Wilkins"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, data = do(t, http.MethodPost, srv.books.URL+"/api/users/login", `{"email":"hermione@hogwarts.edu","password":"alohomora"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
}

func TestEventFeed_ClosedAfterHubStop(t *testing.T) {
	t.Parallel()
	srv := newTestServers(t, false)
	srv.hub.Stop()

	wsURL := "ws" + strings.TrimPrefix(srv.books.URL, "http") + "/api/events/ws"
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)

	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server should close the connection, not leave it hanging")
	}
}
