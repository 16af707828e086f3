package tasks

import "fmt"

type TaskNotFoundError struct {
	Name string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task '%s' not found", e.Name)
}

type TaskExistsError struct {
	Name string
}

func (e TaskExistsError) Error() string {
	return fmt.Sprintf("task '%s' is already registered", e.Name)
}
