package dynamo

// Attribute names of the todos table. They double as the JSON names of
// domain.TodoItem, so a typo here silently writes a stray attribute.
const (
	attrUserID        = "userId"
	attrTodoID        = "todoId"
	attrName          = "name"
	attrDueDate       = "dueDate"
	attrDone          = "done"
	attrAttachmentURL = "attachmentUrl"
)
