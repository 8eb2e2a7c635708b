// Package jsonplaceholder HTTP 演练场使用的 JSONPlaceholder 客户端
package jsonplaceholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

var (
	ErrNotFound    = errors.New("jsonplaceholder: resource not found")
	ErrUnavailable = errors.New("jsonplaceholder: upstream unavailable")
	ErrMalformed   = errors.New("jsonplaceholder: malformed response")
)

type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PostInput 创建或更新帖子时提交的字段
type PostInput struct {
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Album struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// userID 为 0 时返回全部帖子
func (c *Client) Posts(ctx context.Context, userID int) ([]Post, error) {
	var out []Post
	err := c.do(ctx, http.MethodGet, "/posts"+byOwner("userId", userID), nil, &out)
	return out, err
}

func (c *Client) Post(ctx context.Context, id int) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/posts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int, in PostInput) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+strconv.Itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+strconv.Itoa(id), nil, nil)
}

// postID 为 0 时返回全部评论
func (c *Client) Comments(ctx context.Context, postID int) ([]Comment, error) {
	var out []Comment
	path := "/comments"
	if postID > 0 {
		path = "/posts/" + strconv.Itoa(postID) + "/comments"
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) User(ctx context.Context, id int) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Todos(ctx context.Context, userID int) ([]Todo, error) {
	var out []Todo
	err := c.do(ctx, http.MethodGet, "/todos"+byOwner("userId", userID), nil, &out)
	return out, err
}

func (c *Client) Albums(ctx context.Context) ([]Album, error) {
	var out []Album
	err := c.do(ctx, http.MethodGet, "/albums", nil, &out)
	return out, err
}

func byOwner(key string, id int) string {
	if id <= 0 {
		return ""
	}
	return "?" + url.Values{key: {strconv.Itoa(id)}}.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}
