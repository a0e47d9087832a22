package board

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showboard/showboard/internal/db"
	"github.com/showboard/showboard/internal/session"
	"github.com/showboard/showboard/pkg/config"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "board.db")}
	database, err := db.New(cfg, "ERROR")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour)

	engine := gin.New()
	NewRouter(database, sessions, true).SetupRoutes(engine)
	return engine
}

func request(t *testing.T, engine *gin.Engine, method, path, body, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// login logs a user in and returns their session cookie value
func login(t *testing.T, engine *gin.Engine, username, firstName string) string {
	t.Helper()

	w := request(t, engine, http.MethodPost, "/api/login",
		`{"username":"`+username+`","first_name":"`+firstName+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("login set no session cookie")
	return ""
}

func TestLoginValidation(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty username", body: `{"username":"","first_name":"Alice"}`},
		{name: "whitespace username", body: `{"username":"   ","first_name":"Alice"}`},
		{name: "new user without first name", body: `{"username":"alice"}`},
		{name: "new user with blank first name", body: `{"username":"alice","first_name":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, engine, http.MethodPost, "/api/login", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("login = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLoginTwice(t *testing.T) {
	engine := newTestEngine(t)

	w := request(t, engine, http.MethodPost, "/api/login", `{"username":"alice","first_name":"Alice"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first login = %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["returning"] != false {
		t.Errorf("first login returning = %v, want false", body["returning"])
	}
	user := body["user"].(map[string]interface{})
	if user["username"] != "alice" || user["first_name"] != "Alice" || user["portfolio_url"] != "" {
		t.Errorf("first login user = %v", user)
	}

	// Second login ignores the supplied first name entirely
	w = request(t, engine, http.MethodPost, "/api/login", `{"username":"alice","first_name":"Somebody Else"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("second login = %d: %s", w.Code, w.Body.String())
	}
	body = decode(t, w)
	if body["returning"] != true {
		t.Errorf("second login returning = %v, want true", body["returning"])
	}
	user = body["user"].(map[string]interface{})
	if user["first_name"] != "Alice" {
		t.Errorf("second login first_name = %v, want Alice", user["first_name"])
	}
}

func TestCheckUsername(t *testing.T) {
	engine := newTestEngine(t)
	login(t, engine, "alice", "Alice")

	w := request(t, engine, http.MethodPost, "/api/check-username", `{"username":"alice"}`, "")
	body := decode(t, w)
	if w.Code != http.StatusOK || body["exists"] != true {
		t.Errorf("check-username alice = %d %v", w.Code, body)
	}

	w = request(t, engine, http.MethodPost, "/api/check-username", `{"username":"bob"}`, "")
	body = decode(t, w)
	if w.Code != http.StatusOK || body["exists"] != false {
		t.Errorf("check-username bob = %d %v", w.Code, body)
	}

	w = request(t, engine, http.MethodPost, "/api/check-username", `{"username":" "}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("check-username blank = %d, want 400", w.Code)
	}
}

func TestCurrentUserAndLogout(t *testing.T) {
	engine := newTestEngine(t)

	w := request(t, engine, http.MethodGet, "/api/current-user", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("current-user without session = %d, want 401", w.Code)
	}

	cookie := login(t, engine, "alice", "Alice")

	w = request(t, engine, http.MethodGet, "/api/current-user", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("current-user = %d: %s", w.Code, w.Body.String())
	}

	w = request(t, engine, http.MethodPost, "/api/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}

	// Session is gone server-side even if the client keeps the cookie
	w = request(t, engine, http.MethodGet, "/api/current-user", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("current-user after logout = %d, want 401", w.Code)
	}

	// Logout is idempotent
	w = request(t, engine, http.MethodPost, "/api/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Errorf("second logout = %d, want 200", w.Code)
	}
}

func TestUpdateProfileAsymmetry(t *testing.T) {
	engine := newTestEngine(t)

	w := request(t, engine, http.MethodPut, "/api/profile", `{"first_name":"X"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("profile without session = %d, want 401", w.Code)
	}

	cookie := login(t, engine, "alice", "Alice")

	// Empty first name leaves the stored one alone; portfolio is written
	w = request(t, engine, http.MethodPut, "/api/profile", `{"first_name":"","portfolio_url":"https://x"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("profile update = %d: %s", w.Code, w.Body.String())
	}
	user := decode(t, w)["user"].(map[string]interface{})
	if user["first_name"] != "Alice" {
		t.Errorf("first_name = %v, want Alice", user["first_name"])
	}
	if user["portfolio_url"] != "https://x" {
		t.Errorf("portfolio_url = %v, want https://x", user["portfolio_url"])
	}

	// Non-empty first name is written; empty portfolio is written too
	w = request(t, engine, http.MethodPut, "/api/profile", `{"first_name":"NewName","portfolio_url":""}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("profile update = %d: %s", w.Code, w.Body.String())
	}
	user = decode(t, w)["user"].(map[string]interface{})
	if user["first_name"] != "NewName" {
		t.Errorf("first_name = %v, want NewName", user["first_name"])
	}
	if user["portfolio_url"] != "" {
		t.Errorf("portfolio_url = %v, want empty", user["portfolio_url"])
	}
}

func TestCreateAndGetPost(t *testing.T) {
	engine := newTestEngine(t)

	w := request(t, engine, http.MethodPost, "/api/posts", `{"title":"Hello"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("create post without session = %d, want 401", w.Code)
	}

	cookie := login(t, engine, "alice", "Alice")

	w = request(t, engine, http.MethodPost, "/api/posts", `{"title":"  "}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("create post with blank title = %d, want 400", w.Code)
	}

	w = request(t, engine, http.MethodPost, "/api/posts", `{"title":"Hello"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create post = %d: %s", w.Code, w.Body.String())
	}
	created := decode(t, w)["post"].(map[string]interface{})
	if created["title"] != "Hello" || created["username"] != "alice" {
		t.Errorf("created post = %v", created)
	}
	id := int(created["id"].(float64))
	if id <= 0 {
		t.Fatalf("created post id = %d", id)
	}

	w = request(t, engine, http.MethodGet, "/api/posts/"+strconv.Itoa(id), "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get post = %d: %s", w.Code, w.Body.String())
	}
	post := decode(t, w)["post"].(map[string]interface{})
	if post["first_name"] != "Alice" {
		t.Errorf("post first_name = %v, want Alice", post["first_name"])
	}
	if post["like_count"] != float64(0) || post["comment_count"] != float64(0) {
		t.Errorf("fresh post counters = %v/%v, want 0/0", post["like_count"], post["comment_count"])
	}
	if comments := post["comments"].([]interface{}); len(comments) != 0 {
		t.Errorf("fresh post comments = %v, want empty", comments)
	}

	w = request(t, engine, http.MethodGet, "/api/posts/99999", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get absent post = %d, want 404", w.Code)
	}
}

func TestListPostsAnnotations(t *testing.T) {
	engine := newTestEngine(t)

	alice := login(t, engine, "alice", "Alice")
	bob := login(t, engine, "bob", "Bob")

	w := request(t, engine, http.MethodPost, "/api/posts", `{"title":"Mine"}`, alice)
	created := decode(t, w)["post"].(map[string]interface{})
	id := int(created["id"].(float64))

	request(t, engine, http.MethodPost, "/api/posts/"+strconv.Itoa(id)+"/like", "", bob)
	request(t, engine, http.MethodPost, "/api/posts/"+strconv.Itoa(id)+"/comments", `{"content":"nice"}`, bob)

	// Bob sees his own like
	w = request(t, engine, http.MethodGet, "/api/posts", "", bob)
	posts := decode(t, w)["posts"].([]interface{})
	if len(posts) != 1 {
		t.Fatalf("list posts = %d entries, want 1", len(posts))
	}
	post := posts[0].(map[string]interface{})
	if post["like_count"] != float64(1) || post["comment_count"] != float64(1) {
		t.Errorf("counters = %v/%v, want 1/1", post["like_count"], post["comment_count"])
	}
	if post["liked_by_user"] != true {
		t.Errorf("liked_by_user for bob = %v, want true", post["liked_by_user"])
	}

	// Anonymous viewers never see a liked flag
	w = request(t, engine, http.MethodGet, "/api/posts", "", "")
	post = decode(t, w)["posts"].([]interface{})[0].(map[string]interface{})
	if post["liked_by_user"] != false {
		t.Errorf("liked_by_user anonymous = %v, want false", post["liked_by_user"])
	}

	// Profile view carries the same annotations
	w = request(t, engine, http.MethodGet, "/api/users/alice", "", bob)
	if w.Code != http.StatusOK {
		t.Fatalf("get profile = %d", w.Code)
	}
	body := decode(t, w)
	if body["post_count"] != float64(1) {
		t.Errorf("post_count = %v, want 1", body["post_count"])
	}

	w = request(t, engine, http.MethodGet, "/api/users/nobody", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get absent profile = %d, want 404", w.Code)
	}
}

func TestToggleLikeInvolution(t *testing.T) {
	engine := newTestEngine(t)
	cookie := login(t, engine, "alice", "Alice")

	w := request(t, engine, http.MethodPost, "/api/posts", `{"title":"Likeable"}`, cookie)
	id := int(decode(t, w)["post"].(map[string]interface{})["id"].(float64))
	path := "/api/posts/" + strconv.Itoa(id) + "/like"

	w = request(t, engine, http.MethodPost, path, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("like without session = %d, want 401", w.Code)
	}

	w = request(t, engine, http.MethodPost, "/api/posts/99999/like", "", cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("like absent post = %d, want 404", w.Code)
	}

	w = request(t, engine, http.MethodPost, path, "", cookie)
	body := decode(t, w)
	if body["liked"] != true || body["like_count"] != float64(1) {
		t.Errorf("first toggle = %v", body)
	}

	// Second toggle returns to the original state
	w = request(t, engine, http.MethodPost, path, "", cookie)
	body = decode(t, w)
	if body["liked"] != false || body["like_count"] != float64(0) {
		t.Errorf("second toggle = %v", body)
	}
}

func TestComments(t *testing.T) {
	engine := newTestEngine(t)
	alice := login(t, engine, "alice", "Alice")
	bob := login(t, engine, "bob", "Bob")

	w := request(t, engine, http.MethodPost, "/api/posts", `{"title":"Thread"}`, alice)
	id := int(decode(t, w)["post"].(map[string]interface{})["id"].(float64))
	path := "/api/posts/" + strconv.Itoa(id) + "/comments"

	w = request(t, engine, http.MethodPost, path, `{"content":"hi"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("comment without session = %d, want 401", w.Code)
	}
	w = request(t, engine, http.MethodPost, "/api/posts/99999/comments", `{"content":"hi"}`, bob)
	if w.Code != http.StatusNotFound {
		t.Errorf("comment on absent post = %d, want 404", w.Code)
	}
	w = request(t, engine, http.MethodPost, path, `{"content":"   "}`, bob)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank comment = %d, want 400", w.Code)
	}

	w = request(t, engine, http.MethodPost, path, `{"content":"nice work"}`, bob)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment = %d: %s", w.Code, w.Body.String())
	}
	comment := decode(t, w)["comment"].(map[string]interface{})
	commentID := int(comment["id"].(float64))

	// Only the author may delete
	w = request(t, engine, http.MethodDelete, "/api/comments/"+strconv.Itoa(commentID), "", alice)
	if w.Code != http.StatusForbidden {
		t.Errorf("delete foreign comment = %d, want 403", w.Code)
	}
	w = request(t, engine, http.MethodDelete, "/api/comments/"+strconv.Itoa(commentID), "", bob)
	if w.Code != http.StatusOK {
		t.Errorf("delete own comment = %d, want 200", w.Code)
	}
	w = request(t, engine, http.MethodDelete, "/api/comments/"+strconv.Itoa(commentID), "", bob)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete deleted comment = %d, want 404", w.Code)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	engine := newTestEngine(t)
	alice := login(t, engine, "alice", "Alice")
	bob := login(t, engine, "bob", "Bob")

	w := request(t, engine, http.MethodPost, "/api/posts", `{"title":"Protected"}`, alice)
	id := int(decode(t, w)["post"].(map[string]interface{})["id"].(float64))
	path := "/api/posts/" + strconv.Itoa(id)

	request(t, engine, http.MethodPost, path+"/like", "", bob)
	request(t, engine, http.MethodPost, path+"/comments", `{"content":"hi"}`, bob)

	w = request(t, engine, http.MethodDelete, path, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("delete without session = %d, want 401", w.Code)
	}
	w = request(t, engine, http.MethodDelete, path, "", bob)
	if w.Code != http.StatusForbidden {
		t.Errorf("delete foreign post = %d, want 403", w.Code)
	}

	// Still retrievable after the forbidden attempt
	w = request(t, engine, http.MethodGet, path, "", "")
	if w.Code != http.StatusOK {
		t.Errorf("post after forbidden delete = %d, want 200", w.Code)
	}

	w = request(t, engine, http.MethodDelete, path, "", alice)
	if w.Code != http.StatusOK {
		t.Errorf("owner delete = %d, want 200", w.Code)
	}
	w = request(t, engine, http.MethodGet, path, "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("post after delete = %d, want 404", w.Code)
	}
	w = request(t, engine, http.MethodDelete, path, "", alice)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete absent post = %d, want 404", w.Code)
	}
}

func TestClearAll(t *testing.T) {
	engine := newTestEngine(t)
	cookie := login(t, engine, "alice", "Alice")
	request(t, engine, http.MethodPost, "/api/posts", `{"title":"Doomed"}`, cookie)

	w := request(t, engine, http.MethodPost, "/api/admin/clear-all", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("clear-all = %d: %s", w.Code, w.Body.String())
	}

	w = request(t, engine, http.MethodGet, "/api/posts", "", "")
	if posts := decode(t, w)["posts"].([]interface{}); len(posts) != 0 {
		t.Errorf("%d posts survived clear-all", len(posts))
	}

	// Sessions are cleared server-wide too
	w = request(t, engine, http.MethodGet, "/api/current-user", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("current-user after clear-all = %d, want 401", w.Code)
	}
}
