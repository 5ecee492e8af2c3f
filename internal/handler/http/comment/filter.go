package comment

import (
	"net/url"
	"strings"

	"news-portal/internal/handler/http/request"
	"news-portal/internal/repository"
)

// ParseFilter reads the comment listing filters from the query string.
// parent_id=null selects top-level comments only.
func ParseFilter(q url.Values) (repository.CommentFilter, error) {
	var f repository.CommentFilter

	articleID, err := request.PositiveInt64(q, "article_id")
	if err != nil {
		return f, err
	}
	f.ArticleID = articleID

	if strings.EqualFold(strings.TrimSpace(q.Get("parent_id")), "null") {
		f.TopLevelOnly = true
	} else {
		parentID, err := request.PositiveInt64(q, "parent_id")
		if err != nil {
			return f, err
		}
		f.ParentID = parentID
	}

	f.Content = strings.TrimSpace(q.Get("content"))

	f.CreatedAt, err = request.DateRange(q, "created_at")
	if err != nil {
		return f, err
	}
	return f, nil
}
