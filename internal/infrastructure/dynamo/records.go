package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-nosql/internal/domain"
)

// API is the subset of *dynamodb.Client the repositories use.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// RecordRepo provides typed DynamoDB operations for one role-store table.
// The role is a property of the table, never of the stored item.
type RecordRepo struct {
	client    API
	tableName string
	role      domain.Role
}

func NewRecordRepo(client API, tableName string, role domain.Role) *RecordRepo {
	return &RecordRepo{client: client, tableName: tableName, role: role}
}

func (r *RecordRepo) GetByID(ctx context.Context, userID string) (*domain.Record, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrUserID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.role, userID, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%s not found: %w", r.role, domain.ErrNotFound)
	}
	return r.unmarshal(out.Item)
}

func (r *RecordRepo) GetByEmail(ctx context.Context, email string) (*domain.Record, error) {
	return r.queryGSI(ctx, indexEmail, attrEmail, strings.ToLower(strings.TrimSpace(email)))
}

func (r *RecordRepo) GetByPhone(ctx context.Context, phone string) (*domain.Record, error) {
	return r.queryGSI(ctx, indexPhone, attrPhone, strings.TrimSpace(phone))
}

// Update applies a partial update in a single UpdateItem call. Nil values remove the attribute.
// The item must already exist.
func (r *RecordRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return err
	}
	ue.Names["#pk"] = attrUserID
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%s not found: %w", r.role, domain.ErrNotFound)
		}
		return fmt.Errorf("update %s %s: %w", r.role, userID, err)
	}
	return nil
}

func (r *RecordRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Record, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", r.role, attr, err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("%s not found: %w", r.role, domain.ErrNotFound)
	}
	return r.unmarshal(out.Items[0])
}

func (r *RecordRepo) unmarshal(item map[string]types.AttributeValue) (*domain.Record, error) {
	var rec domain.Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", r.role, err)
	}
	rec.Role = r.role
	return &rec, nil
}
