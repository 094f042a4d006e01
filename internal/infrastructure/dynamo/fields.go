package dynamo

// DynamoDB attribute and index names shared by the role-store tables.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	attrUserID     = "user_id"
	attrEmail      = "email"
	attrPhone      = "phone_number"
	fieldUpdatedAt = "updated_at"

	indexEmail = "email-index"
	indexPhone = "phone_number-index"
)
