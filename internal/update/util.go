package update

import "github.com/sandeepkv93/todo/internal/model"

// displayText is the row label: the task line without the completion marker.
func displayText(t model.Task) string {
	t.Done = false
	return model.FormatLine(t)
}

func lineOf(t model.Task) string {
	return model.FormatLine(t)
}
