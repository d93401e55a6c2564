package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level a user assigns to a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight returns the scaling factor used by smart sort:
// high=3, medium=2, low=1. Unknown priorities weigh 1.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Label returns the display name of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// Label returns the display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryPersonal:
		return "Personal"
	case CategoryShopping:
		return "Shopping"
	case CategoryHealth:
		return "Health"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// parseCategory converts user or config text into a Category.
func parseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Task is a unit of work owned by a single user.
type Task struct {
	// ID is generated at creation and never changes.
	ID string `json:"id" validate:"required"`

	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`

	Priority Priority `json:"priority" validate:"required,oneof=high medium low"`
	Category Category `json:"category" validate:"required,oneof=work personal shopping health other"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// Deadline may lie in the past; that is how overdue tasks are detected.
	Deadline time.Time `json:"deadline"`

	Completed bool `json:"completed"`

	// CompletedAt is non-nil exactly when Completed is true.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// IsOverdue reports whether the task is incomplete and its deadline is
// strictly before now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline.Before(now)
}

// Validate checks a hydrated task record, including the
// completed/completedAt invariant.
func (t Task) Validate() error {
	if err := validateStruct(t); err != nil {
		return err
	}

	fields := map[string]string{}
	if t.CreatedAt.IsZero() {
		fields["createdAt"] = "is required"
	}
	if t.Deadline.IsZero() {
		fields["deadline"] = "is required"
	}
	if t.Completed && t.CompletedAt == nil {
		fields["completedAt"] = "is required when completed"
	}
	if !t.Completed && t.CompletedAt != nil {
		fields["completedAt"] = "must be empty when not completed"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority" validate:"required,oneof=high medium low"`
	Category    Category  `json:"category" validate:"required,oneof=work personal shopping health other"`
	Deadline    time.Time `json:"deadline"`
}

// Normalize trims the free-text fields.
func (in TaskInput) Normalize() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// Validate rejects blank titles, unknown enums and a missing deadline.
// Call it on a normalized input.
func (in TaskInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Deadline.IsZero() {
		return &ValidationError{Fields: map[string]string{"deadline": "is required"}}
	}
	return nil
}

// TaskPatch lists the mutable task fields. Nil fields are left unchanged.
// Completion is changed only by toggling, never by a patch.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Normalize trims the free-text fields that are set.
func (p TaskPatch) Normalize() TaskPatch {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	return p
}

// Validate checks the fields that are set. Call it on a normalized patch.
func (p TaskPatch) Validate() error {
	fields := map[string]string{}
	if p.Title != nil && *p.Title == "" {
		fields["title"] = "is required"
	}
	if p.Priority != nil && !p.Priority.Valid() {
		fields["priority"] = "must be one of [high medium low]"
	}
	if p.Category != nil && !p.Category.Valid() {
		fields["category"] = "must be one of [work personal shopping health other]"
	}
	if p.Deadline != nil && p.Deadline.IsZero() {
		fields["deadline"] = "is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Category == nil && p.Deadline == nil
}

// Apply returns a copy of t with the patch merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	return t
}
