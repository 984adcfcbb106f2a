package app

import "blogilista/internal/model"

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogSummary struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// BlogView is a blog joined with the public fields of its owner.
type BlogView struct {
	BlogSummary
	User *UserSummary `json:"user"`
}

// UserView is a user joined with their blogs, minus the back-reference.
type UserView struct {
	UserSummary
	Blogs []BlogSummary `json:"blogs"`
}

func summarizeUser(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

func summarizeBlog(b model.Blog) BlogSummary {
	return BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes}
}
