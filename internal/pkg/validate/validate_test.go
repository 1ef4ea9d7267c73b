package validate

import (
	"testing"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(domain.CreateTodoRequest{Name: "Buy milk", DueDate: "2024-01-01"}))
}

func TestStruct_MissingFields_UsesJSONNames(t *testing.T) {
	err := Struct(domain.CreateTodoRequest{})
	assert.ErrorContains(t, err, "name is required")
	assert.ErrorContains(t, err, "dueDate is required")
}

func TestStruct_BadDate(t *testing.T) {
	err := Struct(domain.CreateTodoRequest{Name: "x", DueDate: "01/01/2024"})
	assert.ErrorContains(t, err, "dueDate must be a date in 2006-01-02 format")
}

func TestStruct_UpdateRequiresDone(t *testing.T) {
	err := Struct(domain.UpdateTodoRequest{Name: "x", DueDate: "2024-01-01"})
	assert.ErrorContains(t, err, "done is required")

	done := false
	assert.NoError(t, Struct(domain.UpdateTodoRequest{Name: "x", DueDate: "2024-01-01", Done: &done}))
}
