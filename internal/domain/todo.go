package domain

// TodoItem is a single to-do record owned by one user. The table is keyed by
// (userId, todoId); attribute names match the JSON names.
type TodoItem struct {
	UserID        string  `json:"userId" dynamodbav:"userId"`
	TodoID        string  `json:"todoId" dynamodbav:"todoId"`
	Name          string  `json:"name" dynamodbav:"name"`
	DueDate       string  `json:"dueDate" dynamodbav:"dueDate"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
	Done          bool    `json:"done" dynamodbav:"done"`
	AttachmentURL *string `json:"attachmentUrl" dynamodbav:"attachmentUrl"`
}

// TodoUpdate is the set of fields a partial update may change. Identifiers,
// createdAt and attachmentUrl are never part of it.
type TodoUpdate struct {
	Name    string
	DueDate string
	Done    bool
}

type CreateTodoRequest struct {
	Name    string `json:"name" validate:"required,max=256"`
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

type UpdateTodoRequest struct {
	Name    string `json:"name" validate:"required,max=256"`
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Done    *bool  `json:"done" validate:"required"`
}

// Update converts the request into the storage-level update set.
func (r UpdateTodoRequest) Update() TodoUpdate {
	u := TodoUpdate{Name: r.Name, DueDate: r.DueDate}
	if r.Done != nil {
		u.Done = *r.Done
	}
	return u
}
