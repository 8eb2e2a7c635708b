package jsonplaceholder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		posts := []Post{
			{ID: 1, UserID: 1, Title: "sunt aut facere", Body: "quia et suscipit"},
			{ID: 2, UserID: 2, Title: "qui est esse", Body: "est rerum tempore"},
		}
		if r.URL.Query().Get("userId") == "2" {
			posts = posts[1:]
		}
		_ = json.NewEncoder(w).Encode(posts)
	})
	mux.HandleFunc("GET /posts/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Post{ID: 1, UserID: 1, Title: "sunt aut facere"})
	})
	mux.HandleFunc("POST /posts", func(w http.ResponseWriter, r *http.Request) {
		var in PostInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Post{ID: 101, UserID: in.UserID, Title: in.Title, Body: in.Body})
	})
	mux.HandleFunc("DELETE /posts/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientPosts(t *testing.T) {
	t.Parallel()
	c := New(newTestServer(t).URL, time.Second)
	ctx := context.Background()

	posts, err := c.Posts(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("unexpected posts: got=%d want=2", len(posts))
	}

	byUser, err := c.Posts(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != 2 {
		t.Fatalf("unexpected posts for user 2: %+v", byUser)
	}

	post, err := c.Post(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "sunt aut facere" {
		t.Fatalf("unexpected title: got=%q", post.Title)
	}

	created, err := c.CreatePost(ctx, PostInput{UserID: 3, Title: "hola", Body: "mundo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 101 || created.UserID != 3 {
		t.Fatalf("unexpected created post: %+v", created)
	}

	if err := c.DeletePost(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientErrors(t *testing.T) {
	t.Parallel()
	c := New(newTestServer(t).URL, time.Second)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"not found", func() error { _, err := c.Post(ctx, 999); return err }, ErrNotFound},
		{"malformed", func() error { _, err := c.Users(ctx); return err }, ErrMalformed},
		{"upstream 503", func() error { _, err := c.Todos(ctx, 0); return err }, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.want)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base, 200*time.Millisecond).Albums(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrUnavailable)
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()
	posts := []Post{{ID: 1, Title: "Hola Mundo"}, {ID: 2, Body: "otro MUNDO"}, {ID: 3, Title: "nada"}}
	if got := FilterPosts(posts, "mundo"); len(got) != 2 {
		t.Fatalf("unexpected filtered posts: got=%d want=2", len(got))
	}
	if got := FilterPosts(posts, "  "); len(got) != 3 {
		t.Fatalf("blank query should keep all: got=%d", len(got))
	}

	todos := []Todo{{ID: 1, Title: "comprar pan", Completed: true}, {ID: 2, Title: "comprar leche"}}
	if got := FilterTodos(todos, "comprar", "pending"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected pending todos: %+v", got)
	}
	if got := FilterTodos(todos, "", "all"); len(got) != 2 {
		t.Fatalf("unexpected todos: got=%d want=2", len(got))
	}

	comments := []Comment{{ID: 1, Email: "Eliseo@gardner.biz"}, {ID: 2, Name: "id labore"}}
	if got := FilterComments(comments, "gardner"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected comments: %+v", got)
	}
}
