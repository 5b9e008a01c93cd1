package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryWork      Category = "Work"
	CategoryPersonal  Category = "Personal"
	CategoryShopping  Category = "Shopping"
	CategoryHealth    Category = "Health"
	CategoryHobbies   Category = "Hobbies"
	CategoryFamily    Category = "Family"
	CategoryEducation Category = "Education"
	CategoryTravel    Category = "Travel"
	CategoryFinance   Category = "Finance"
	CategoryHome      Category = "Home"
)

var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryHobbies,
	CategoryFamily,
	CategoryEducation,
	CategoryTravel,
	CategoryFinance,
	CategoryHome,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	DefaultPriority = PriorityMedium
	DefaultCategory = CategoryWork
)

type Task struct {
	ID          string
	Description string
	Priority    Priority
	Category    Category
	Deadline    string
	Done        bool
}

// HasMetadata reports whether the task carries any of priority, category or
// deadline. Tasks without metadata serialize as a bare description.
func (t Task) HasMetadata() bool {
	return t.Priority != "" || t.Category != "" || t.Deadline != ""
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("model: task description is required")
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.Category != "" && !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	return nil
}

// Cycle returns the element step positions away from current, wrapping in
// both directions. An unknown current value starts from the first element.
func Cycle[T comparable](items []T, current T, step int) T {
	if len(items) == 0 {
		return current
	}
	idx := -1
	for i, item := range items {
		if item == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items[0]
	}
	n := len(items)
	return items[((idx+step)%n+n)%n]
}
