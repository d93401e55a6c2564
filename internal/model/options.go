package model

import (
	"fmt"
	"strings"
)

// SortOption selects the ordering applied within each completion partition.
type SortOption string

const (
	// SortDeadline is the "smart" sort combining deadline urgency and priority.
	SortDeadline  SortOption = "deadline"
	SortPriority  SortOption = "priority"
	SortCreatedAt SortOption = "createdAt"
	SortTitle     SortOption = "title"
)

// SortOptions lists the selectable sort options in display order.
var SortOptions = []SortOption{SortDeadline, SortPriority, SortCreatedAt, SortTitle}

// Label returns the display name of the sort option.
func (o SortOption) Label() string {
	switch o {
	case SortDeadline:
		return "Smart Sort"
	case SortPriority:
		return "Priority"
	case SortCreatedAt:
		return "Date Added"
	case SortTitle:
		return "Alphabetical"
	default:
		return string(o)
	}
}

// ParseSortOption accepts the option names case-insensitively.
func ParseSortOption(s string) (SortOption, error) {
	s = strings.TrimSpace(s)
	for _, o := range SortOptions {
		if strings.EqualFold(string(o), s) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q", s)
}

// StatusFilter narrows tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// StatusFilters lists the status filters in display order.
var StatusFilters = []StatusFilter{StatusAll, StatusActive, StatusCompleted}

// Label returns the display name of the status filter.
func (f StatusFilter) Label() string {
	switch f {
	case StatusAll:
		return "All Tasks"
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	default:
		return string(f)
	}
}

// ParseStatusFilter accepts the filter names case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.TrimSpace(s)
	for _, f := range StatusFilters {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// CategoryFilter is either CategoryAll or the name of a Category.
type CategoryFilter string

// CategoryAll disables category filtering.
const CategoryAll CategoryFilter = "all"

// CategoryFilters lists "all" followed by every category.
var CategoryFilters = func() []CategoryFilter {
	filters := []CategoryFilter{CategoryAll}
	for _, c := range Categories {
		filters = append(filters, CategoryFilter(c))
	}
	return filters
}()

// Label returns the display name of the category filter.
func (f CategoryFilter) Label() string {
	if f == CategoryAll {
		return "All Categories"
	}
	return Category(f).Label()
}

// ParseCategoryFilter accepts "all" or a category name.
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, nil
	}
	c, err := parseCategory(s)
	if err != nil {
		return "", err
	}
	return CategoryFilter(c), nil
}

// ViewOptions bundles the dashboard's filter and sort selection.
type ViewOptions struct {
	Status   StatusFilter
	Category CategoryFilter
	Sort     SortOption
}

// DefaultViewOptions matches a fresh dashboard: all tasks, smart sort.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Status:   StatusAll,
		Category: CategoryAll,
		Sort:     SortDeadline,
	}
}
