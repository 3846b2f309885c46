package ui

import (
	"fmt"
	"strings"

	"feedbacklens/app"
	"feedbacklens/domain/core"
	"feedbacklens/domain/feedback"

	"github.com/gin-gonic/gin"
)

// parseFilter builds a FilterSpec from query parameters:
//
//	products: repeated or comma-separated product names
//	from, to: inclusive YYYY-MM-DD date bounds
func parseFilter(c *gin.Context) (feedback.FilterSpec, error) {
	var filter feedback.FilterSpec

	for _, raw := range c.QueryArray("products") {
		for _, p := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				filter.Products = append(filter.Products, trimmed)
			}
		}
	}

	var err error
	if filter.DateFrom, err = parseDateParam(c.Query("from"), "from"); err != nil {
		return feedback.FilterSpec{}, err
	}
	if filter.DateTo, err = parseDateParam(c.Query("to"), "to"); err != nil {
		return feedback.FilterSpec{}, err
	}

	if err := filter.Validate(); err != nil {
		return feedback.FilterSpec{}, err
	}
	return filter, nil
}

func parseDateParam(value, name string) (*core.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, ok := core.ParseDate(value)
	if !ok {
		return nil, fmt.Errorf("%w: unparseable %s date %q", core.ErrInvalidFilter, name, value)
	}
	return &d, nil
}

// parseBrowseOptions reads the negative-browser controls:
//
//	sort: most_recent | lowest_rating | longest_comment | highest_rating
//	q:    case-insensitive text filter over review text
func parseBrowseOptions(c *gin.Context) app.BrowseOptions {
	opts := app.BrowseOptions{
		Sort:    app.SortMostRecent,
		Keyword: c.Query("q"),
	}
	switch app.NegativeSort(c.Query("sort")) {
	case app.SortLowestRating:
		opts.Sort = app.SortLowestRating
	case app.SortLongestComment:
		opts.Sort = app.SortLongestComment
	case app.SortHighestRating:
		opts.Sort = app.SortHighestRating
	}
	return opts
}
