package jsonplaceholder

import "strings"

// Filter 保留任一字段包含 q（不区分大小写）的条目，q 为空时原样返回
func Filter[T any](items []T, q string, fields func(T) []string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func FilterPosts(posts []Post, q string) []Post {
	return Filter(posts, q, func(p Post) []string { return []string{p.Title, p.Body} })
}

func FilterComments(comments []Comment, q string) []Comment {
	return Filter(comments, q, func(c Comment) []string { return []string{c.Name, c.Email, c.Body} })
}

func FilterUsers(users []User, q string) []User {
	return Filter(users, q, func(u User) []string { return []string{u.Name, u.Username, u.Email} })
}

// FilterTodos status 取 completed / pending，其他值不过滤
func FilterTodos(todos []Todo, q, status string) []Todo {
	out := Filter(todos, q, func(t Todo) []string { return []string{t.Title} })
	if status != "completed" && status != "pending" {
		return out
	}
	want := status == "completed"
	kept := make([]Todo, 0, len(out))
	for _, t := range out {
		if t.Completed == want {
			kept = append(kept, t)
		}
	}
	return kept
}
