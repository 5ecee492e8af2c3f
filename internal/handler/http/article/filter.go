package article

import (
	"net/url"
	"strings"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/request"
	"news-portal/internal/repository"
)

// dateColumns are the columns accepted as start_<col>/end_<col> ranges.
var dateColumns = []string{"submitted_at", "approved_at", "rejected_at", "published_at", "created_at"}

// ParseFilter reads the article listing filters from the query string.
func ParseFilter(q url.Values) (repository.ArticleFilter, error) {
	var f repository.ArticleFilter

	userID, err := request.PositiveInt64(q, "user_id")
	if err != nil {
		return f, err
	}
	f.UserID = userID
	f.Title = strings.TrimSpace(q.Get("title"))
	f.Content = strings.TrimSpace(q.Get("content"))

	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		st, err := entity.ParseArticleStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}

	ranges := map[string]*repository.TimeRange{
		"submitted_at": &f.SubmittedAt,
		"approved_at":  &f.ApprovedAt,
		"rejected_at":  &f.RejectedAt,
		"published_at": &f.PublishedAt,
		"created_at":   &f.CreatedAt,
	}
	for _, col := range dateColumns {
		tr, err := request.DateRange(q, col)
		if err != nil {
			return f, err
		}
		*ranges[col] = tr
	}
	return f, nil
}
