// Package stats computes aggregate figures over a list of blog records.
package stats

// Record is the subset of a blog the aggregates look at.
type Record struct {
	Title  string
	Author string
	Likes  int
}

type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every aggregate; nil fields mean the input was empty.
type Summary struct {
	TotalLikes    int          `json:"total_likes"`
	FavouriteBlog *string      `json:"favourite_blog"`
	MostBlogs     *AuthorCount `json:"most_blogs"`
	MostLikes     *AuthorLikes `json:"most_likes"`
}

func TotalLikes(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Likes
	}
	return total
}

// FavouriteBlog returns the title of the most liked record. The first record
// wins a tie.
func FavouriteBlog(records []Record) (string, bool) {
	if len(records) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(records); i++ {
		if records[i].Likes > records[best].Likes {
			best = i
		}
	}
	return records[best].Title, true
}

// MostBlogs returns the author with the most records. Authors are compared
// by exact string and visited in order of first appearance, so the earliest
// author to reach the maximum wins.
func MostBlogs(records []Record) (AuthorCount, bool) {
	groups := groupByAuthor(records)
	if len(groups) == 0 {
		return AuthorCount{}, false
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if len(g.records) > len(best.records) {
			best = g
		}
	}
	return AuthorCount{Author: best.author, Blogs: len(best.records)}, true
}

// MostLikes returns the author whose records have the largest likes sum.
// Ties resolve the same way as MostBlogs.
func MostLikes(records []Record) (AuthorLikes, bool) {
	groups := groupByAuthor(records)
	if len(groups) == 0 {
		return AuthorLikes{}, false
	}
	best := AuthorLikes{Author: groups[0].author, Likes: TotalLikes(groups[0].records)}
	for _, g := range groups[1:] {
		if sum := TotalLikes(g.records); sum > best.Likes {
			best = AuthorLikes{Author: g.author, Likes: sum}
		}
	}
	return best, true
}

func Summarize(records []Record) Summary {
	summary := Summary{TotalLikes: TotalLikes(records)}
	if title, ok := FavouriteBlog(records); ok {
		summary.FavouriteBlog = &title
	}
	if mb, ok := MostBlogs(records); ok {
		summary.MostBlogs = &mb
	}
	if ml, ok := MostLikes(records); ok {
		summary.MostLikes = &ml
	}
	return summary
}

type authorGroup struct {
	author  string
	records []Record
}

func groupByAuthor(records []Record) []authorGroup {
	index := make(map[string]int, len(records))
	var groups []authorGroup
	for _, r := range records {
		i, ok := index[r.Author]
		if !ok {
			i = len(groups)
			index[r.Author] = i
			groups = append(groups, authorGroup{author: r.Author})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}
